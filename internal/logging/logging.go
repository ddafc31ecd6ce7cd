package logging

import (
	"fmt"
	"log/slog"
	"strings"
)

// VerbosityLevel defines the logging verbosity.
type VerbosityLevel int

const (
	Verbose VerbosityLevel = iota
	Info
	Warning
	Error
	Off
)

// levelOff sits above every level slog emits, so nothing passes the handler.
const levelOff = slog.Level(100)

var verbosityNames = map[VerbosityLevel]string{
	Verbose: "Verbose",
	Info:    "Info",
	Warning: "Warning",
	Error:   "Error",
	Off:     "Off",
}

func (v VerbosityLevel) String() string {
	if name, ok := verbosityNames[v]; ok {
		return name
	}
	return fmt.Sprintf("VerbosityLevel(%d)", int(v))
}

// ParseVerbosity accepts the CLI names (Verbose, Info, Warning, Error, Off)
// and the slog-style aliases debug and warn, case-insensitively.
func ParseVerbosity(s string) (VerbosityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "verbose", "debug":
		return Verbose, nil
	case "info":
		return Info, nil
	case "warning", "warn":
		return Warning, nil
	case "error":
		return Error, nil
	case "off":
		return Off, nil
	}
	return Info, fmt.Errorf("invalid verbosity level '%s'. Valid levels are Verbose, Info, Warning, Error, Off", s)
}

// SlogLevel maps the verbosity onto the slog level used as handler minimum.
func (v VerbosityLevel) SlogLevel() slog.Level {
	switch v {
	case Verbose:
		return slog.LevelDebug
	case Warning:
		return slog.LevelWarn
	case Error:
		return slog.LevelError
	case Off:
		return levelOff
	default:
		return slog.LevelInfo
	}
}
