package config

// Defaults applied when the environment leaves a setting unset.
const (
	DefaultPort           = 8080
	DefaultUploadDir      = "uploads"
	DefaultMaxUploadBytes = 10 << 20 // 10 MB
	DefaultMaxConnections = 64
	DefaultCacheSize      = 256
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
)
