package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/wordcount"
)

// Counting metrics
var (
	FilesCounted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameFilesCounted,
			Help: HelpTextFilesCounted,
		},
		[]string{LabelStatus},
	)

	WordsCounted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWordsCounted,
			Help: HelpTextWordsCounted,
		},
	)

	MatchesCounted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameMatchesCounted,
			Help: HelpTextMatchesCounted,
		},
	)
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// RecordCount records the outcome of one CountWords call.
func RecordCount(res wordcount.Result, err error) {
	FilesCounted.WithLabelValues(countStatus(err)).Inc()
	if err != nil {
		return
	}
	WordsCounted.Add(float64(res.TotalWords))
	MatchesCounted.Add(float64(res.MatchCount))
}

func countStatus(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.Is(err, wordcount.ErrNotFound):
		return StatusNotFound
	case errors.Is(err, wordcount.ErrIOFailure):
		return StatusIOError
	default:
		return StatusOther
	}
}
