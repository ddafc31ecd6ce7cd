package logging

import (
	"io"
	"log/slog"
	"strings"
)

// Config represents logger configuration
type Config struct {
	Verbosity   VerbosityLevel
	Format      string // "json", "text"
	ServiceName string
	Version     string
}

// DefaultConfig returns the CLI defaults.
func DefaultConfig() Config {
	return Config{
		Verbosity:   Info,
		Format:      FormatText,
		ServiceName: DefaultServiceName,
		Version:     DefaultVersion,
	}
}

// IsJSON returns true if format is JSON
func (c Config) IsJSON() bool {
	return strings.EqualFold(c.Format, FormatJSON)
}

// NewLogger builds a slog logger writing to w, tagged with the service and
// version attributes.
func NewLogger(cfg Config, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Verbosity.SlogLevel()}

	var handler slog.Handler
	if cfg.IsJSON() {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(
		slog.String(AttrKeyService, cfg.ServiceName),
		slog.String(AttrKeyVersion, cfg.Version),
	)
}

// Init builds a logger and installs it as the slog default.
func Init(cfg Config, w io.Writer) *slog.Logger {
	l := NewLogger(cfg, w)
	slog.SetDefault(l)
	return l
}

// OrDefault returns l, or slog.Default() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}
