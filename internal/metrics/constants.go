package metrics

// Metric names
const (
	MetricNameFilesCounted         = "wordcount_files_total"
	MetricNameWordsCounted         = "wordcount_words_total"
	MetricNameMatchesCounted       = "wordcount_matches_total"
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Help texts
const (
	HelpTextFilesCounted         = "Files counted, by outcome"
	HelpTextWordsCounted         = "Words seen in successfully counted files"
	HelpTextMatchesCounted       = "Words containing the requested target"
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Number of HTTP requests currently being processed"
)

// Label names
const (
	LabelStatus = "status"
	LabelMethod = "method"
	LabelPath   = "path"
)

// Outcome label values for MetricNameFilesCounted
const (
	StatusOK       = "ok"
	StatusNotFound = "not_found"
	StatusIOError  = "io_error"
	StatusOther    = "error"
)

// HTTPLatencyBuckets are the histogram buckets for request latency.
var HTTPLatencyBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
