// Package textsummary renders batch results for the terminal or as JSON.
package textsummary

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/batch"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/runconfig"
)

type fileEntry struct {
	Path       string `json:"path"`
	TotalWords int    `json:"total_words"`
	MatchCount int    `json:"match_count"`
	Error      string `json:"error,omitempty"`
}

type summaryEntry struct {
	Target       string      `json:"target,omitempty"`
	Files        []fileEntry `json:"files"`
	TotalWords   int         `json:"total_words"`
	TotalMatches int         `json:"total_matches"`
	Failed       int         `json:"failed"`
}

// Write renders summary to w in format (runconfig.FormatText or FormatJSON).
func Write(w io.Writer, summary batch.Summary, target, format string) error {
	switch format {
	case runconfig.FormatJSON:
		return writeJSON(w, summary, target)
	case runconfig.FormatText, "":
		return writeText(w, summary, target)
	}
	return fmt.Errorf("unsupported output format: %s", format)
}

func writeText(w io.Writer, summary batch.Summary, target string) error {
	for i, fr := range summary.Files {
		var err error
		if fr.Err != nil {
			_, err = fmt.Fprintf(w, "%d. %s: error: %v\n", i+1, fr.Path, fr.Err)
		} else if target != "" {
			_, err = fmt.Fprintf(w, "%d. %s: %d words, %d matches\n", i+1, fr.Path, fr.Result.TotalWords, fr.Result.MatchCount)
		} else {
			_, err = fmt.Fprintf(w, "%d. %s: %d words\n", i+1, fr.Path, fr.Result.TotalWords)
		}
		if err != nil {
			return err
		}
	}

	line := fmt.Sprintf("Total: %d words", summary.TotalWords)
	if target != "" {
		line += fmt.Sprintf(", the word %s appears %d times", target, summary.TotalMatches)
	}
	if summary.Failed > 0 {
		line += fmt.Sprintf(" (%d of %d files failed)", summary.Failed, len(summary.Files))
	}
	_, err := fmt.Fprintln(w, line)
	return err
}

func writeJSON(w io.Writer, summary batch.Summary, target string) error {
	out := summaryEntry{
		Target:       target,
		Files:        make([]fileEntry, 0, len(summary.Files)),
		TotalWords:   summary.TotalWords,
		TotalMatches: summary.TotalMatches,
		Failed:       summary.Failed,
	}
	for _, fr := range summary.Files {
		e := fileEntry{Path: fr.Path, TotalWords: fr.Result.TotalWords, MatchCount: fr.Result.MatchCount}
		if fr.Err != nil {
			e.Error = fr.Err.Error()
		}
		out.Files = append(out.Files, e)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	return nil
}
