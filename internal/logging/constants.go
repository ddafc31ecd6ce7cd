package logging

// Log Format String Values
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Service Configuration Values
const (
	DefaultServiceName = "go-word-counter"
	DefaultVersion     = "dev"
)

// Log Attribute Keys
const (
	AttrKeyService   = "service"
	AttrKeyVersion   = "version"
	AttrKeyRequestID = "request_id"
)
