// Package wordcount counts whitespace-delimited words in text files and how
// many of them contain a target substring, ignoring case.
package wordcount

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filereader"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/logging"
)

// Result is the outcome of one count. MatchCount never exceeds TotalWords.
type Result struct {
	TotalWords int `json:"total_words"`
	MatchCount int `json:"match_count"`
}

// WordCounter is implemented by Counter and CachingCounter.
type WordCounter interface {
	CountWords(path, target string) (Result, error)
}

// Counter reads files through a Filesystem. The zero value is not usable;
// build one with NewCounter.
type Counter struct {
	fs     filesystem.Filesystem
	logger *slog.Logger
}

// NewCounter returns a Counter over fsys. A nil logger uses slog.Default().
func NewCounter(fsys filesystem.Filesystem, logger *slog.Logger) *Counter {
	return &Counter{fs: fsys, logger: logger}
}

var defaultCounter = NewCounter(filesystem.DefaultFS{}, nil)

// CountWords counts words of the file at path on the host filesystem.
// See Counter.CountWords.
func CountWords(path, target string) (Result, error) {
	return defaultCounter.CountWords(path, target)
}

// CountWords probes path, reads its whole content and counts it with
// CountText. A missing path or a directory fails with ErrNotFound before any
// read; open, read and decode failures wrap ErrIOFailure together with the
// cause.
func (c *Counter) CountWords(path, target string) (Result, error) {
	log := logging.OrDefault(c.logger)

	info, err := c.fs.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Result{}, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	}
	if info.IsDir() {
		return Result{}, fmt.Errorf("%w: %s is a directory", ErrNotFound, path)
	}

	content, err := filereader.ReadText(c.fs, path)
	if err != nil {
		return Result{}, fmt.Errorf("%w %s: %w", ErrIOFailure, path, err)
	}

	res := CountText(content, target)
	log.Debug("Counted words", "path", path, "target", target,
		"total_words", res.TotalWords, "match_count", res.MatchCount)
	return res, nil
}

// CountText splits content on whitespace and counts the words containing
// target, both case-folded. An empty target requests no search and yields a
// MatchCount of zero.
func CountText(content, target string) Result {
	words := strings.Fields(content)
	res := Result{TotalWords: len(words)}
	if target == "" {
		return res
	}

	needle := foldCase(target)
	for _, w := range words {
		if strings.Contains(foldCase(w), needle) {
			res.MatchCount++
		}
	}
	return res
}

// foldCase maps s through upper then lower case, so letters with several
// lower-case forms (ı and i, ſ and s) compare equal.
func foldCase(s string) string {
	return strings.ToLower(strings.ToUpper(s))
}
