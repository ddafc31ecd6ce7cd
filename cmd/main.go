package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/batch"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/glob"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/reporter/textsummary"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/runconfig"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/utils"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/wordcount"
)

const (
	promptPath   = "Enter the file path: "
	promptTarget = "Enter the target word: "
)

var errNoInputFiles = errors.New("no valid input files found after expanding patterns")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	file      string
	files     string
	target    string
	targetSet bool
	format    string
	workers   int
	cacheSize int
	verbosity string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fset := flag.NewFlagSet("go_word_counter", flag.ContinueOnError)
	fset.SetOutput(stderr)

	opts := &options{}
	fset.StringVar(&opts.file, "file", "", "File to count (skips the interactive prompts)")
	fset.StringVar(&opts.files, "files", "", "File paths or patterns, semicolon-separated (e.g., \"./docs/**/*.txt;./notes.md\")")
	fset.StringVar(&opts.target, "target", "", "Word to look for (case-insensitive substring match)")
	fset.StringVar(&opts.format, "format", runconfig.FormatText, "Batch output format (text, json)")
	fset.IntVar(&opts.workers, "workers", runconfig.DefaultWorkers, "Number of files counted concurrently in batch mode")
	fset.IntVar(&opts.cacheSize, "cache-size", 0, "Result cache entries for batch mode (0 disables)")
	fset.StringVar(&opts.verbosity, "verbosity", "Warning", "Logging verbosity level (Verbose, Info, Warning, Error, Off)")

	if err := fset.Parse(args); err != nil {
		return nil, err
	}
	fset.Visit(func(f *flag.Flag) {
		if f.Name == "target" {
			opts.targetSet = true
		}
	})
	return opts, nil
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	verbosity, err := logging.ParseVerbosity(opts.verbosity)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.files != "" {
		return runBatch(ctx, opts, verbosity, stdout, stderr)
	}
	return runSingle(opts, newLogger(verbosity, stderr), stdin, stdout, stderr)
}

func newLogger(verbosity logging.VerbosityLevel, w io.Writer) *slog.Logger {
	cfg := logging.DefaultConfig()
	cfg.Verbosity = verbosity
	return logging.NewLogger(cfg, w)
}

// runSingle counts one file, prompting for whatever the flags left out.
func runSingle(opts *options, logger *slog.Logger, stdin io.Reader, stdout, stderr io.Writer) int {
	path, target := opts.file, opts.target
	if path == "" {
		in := bufio.NewReader(stdin)
		path = prompt(in, stdout, promptPath)
		if !opts.targetSet {
			target = prompt(in, stdout, promptTarget)
		}
	}

	res, err := wordcount.NewCounter(filesystem.DefaultFS{}, logger).CountWords(path, target)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fmt.Fprintf(stdout, "Total words in the file: %d\n", res.TotalWords)
	fmt.Fprintf(stdout, "The word %s appears in the text %d times\n", target, res.MatchCount)
	return 0
}

// prompt writes label and returns the next input line without its line
// terminator. End of input yields whatever was read so far.
func prompt(in *bufio.Reader, out io.Writer, label string) string {
	fmt.Fprint(out, label)
	line, _ := in.ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// runBatch expands the patterns, counts every file on a worker pool and
// writes the summary. Any failed file makes the exit code 1.
func runBatch(ctx context.Context, opts *options, verbosity logging.VerbosityLevel, stdout, stderr io.Writer) int {
	cfg, err := runconfig.NewRunConfiguration(nil, nil, opts.target, opts.format, opts.workers, verbosity)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger := newLogger(cfg.VerbosityLevel(), stderr)

	cfg.Files, cfg.InvalidPatterns = expandPatterns(opts.files, logger)
	if len(cfg.InputFiles()) == 0 {
		fmt.Fprintf(stderr, "Error: %v\n", errNoInputFiles)
		if len(cfg.InvalidFilePatterns()) > 0 {
			fmt.Fprintf(stderr, "Patterns that yielded no files or errors: %s\n", strings.Join(cfg.InvalidFilePatterns(), ", "))
		}
		return 1
	}

	cache, err := wordcount.NewResultCache(opts.cacheSize)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fsys := filesystem.DefaultFS{}
	counter := wordcount.NewCachingCounter(fsys, wordcount.NewCounter(fsys, logger), cache)

	logger.Info("Counting files",
		"files", len(cfg.InputFiles()),
		"invalid_patterns", len(cfg.InvalidFilePatterns()),
		"workers", cfg.Workers())

	summary := batch.NewRunner(counter, cfg.Workers(), logger).Run(ctx, cfg.InputFiles(), cfg.Target())
	if err := textsummary.Write(stdout, summary, cfg.Target(), cfg.OutputFormat()); err != nil {
		fmt.Fprintf(stderr, "Error: failed to write summary: %v\n", err)
		return 1
	}
	if summary.Failed > 0 {
		return 1
	}
	return 0
}

// expandPatterns resolves semicolon-separated patterns into unique regular
// files. Patterns that fail or match nothing are returned separately.
func expandPatterns(raw string, logger *slog.Logger) (files, invalid []string) {
	seen := make(map[string]struct{})
	fsys := filesystem.DefaultFS{}

	for _, pattern := range utils.SplitThatEnsuresGlobsAreSafe(raw, []rune{';'}) {
		expanded, err := glob.GetFiles(pattern)
		if err != nil {
			logger.Warn("Error expanding file pattern", "pattern", pattern, "error", err)
			invalid = append(invalid, pattern)
			continue
		}

		matched := false
		for _, file := range expanded {
			info, err := fsys.Stat(file)
			if err != nil {
				logger.Warn("Could not stat file", "pattern", pattern, "file", file, "error", err)
				continue
			}
			if info.IsDir() {
				continue
			}
			matched = true
			if _, dup := seen[file]; dup {
				continue
			}
			seen[file] = struct{}{}
			files = append(files, file)
		}
		if !matched {
			logger.Warn("No files found for pattern", "pattern", pattern)
			invalid = append(invalid, pattern)
		}
	}
	return files, invalid
}
