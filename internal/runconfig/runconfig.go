package runconfig

import (
	"fmt"
	"strings"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
)

// Output formats for batch summaries.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DefaultWorkers is used when no positive worker count is requested.
const DefaultWorkers = 4

// IRunConfiguration defines the configuration of one CLI run.
type IRunConfiguration interface {
	InputFiles() []string
	InvalidFilePatterns() []string
	Target() string
	OutputFormat() string
	Workers() int
	VerbosityLevel() logging.VerbosityLevel
}

// RunConfiguration is a concrete implementation of IRunConfiguration.
type RunConfiguration struct {
	Files           []string
	InvalidPatterns []string
	CfgTarget       string
	Format          string
	WorkerCount     int
	VLevel          logging.VerbosityLevel
}

func (rc *RunConfiguration) InputFiles() []string                  { return rc.Files }
func (rc *RunConfiguration) InvalidFilePatterns() []string         { return rc.InvalidPatterns }
func (rc *RunConfiguration) Target() string                        { return rc.CfgTarget }
func (rc *RunConfiguration) OutputFormat() string                  { return rc.Format }
func (rc *RunConfiguration) Workers() int                          { return rc.WorkerCount }
func (rc *RunConfiguration) VerbosityLevel() logging.VerbosityLevel { return rc.VLevel }

// NewRunConfiguration is a constructor for RunConfiguration.
// files should be a list of actual, existing file paths after glob expansion.
// invalidPatterns are any original patterns that did not resolve to files.
func NewRunConfiguration(
	files []string,
	invalidPatterns []string,
	target string,
	format string,
	workers int,
	verbosity logging.VerbosityLevel,
) (*RunConfiguration, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = FormatText
	}
	if format != FormatText && format != FormatJSON {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &RunConfiguration{
		Files:           files,
		InvalidPatterns: invalidPatterns,
		CfgTarget:       target,
		Format:          format,
		WorkerCount:     workers,
		VLevel:          verbosity,
	}, nil
}
