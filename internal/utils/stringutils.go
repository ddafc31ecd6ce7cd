package utils

import (
	"regexp"
	"strings"
)

// SplitThatEnsuresGlobsAreSafe splits a string by any of the given separators,
// but does not split within brace-delimited glob patterns like {group1,group2}.
// Parts are trimmed and empty parts are dropped.
func SplitThatEnsuresGlobsAreSafe(s string, separators []rune) []string {
	if len(separators) == 0 {
		if t := strings.TrimSpace(s); t != "" {
			return []string{t}
		}
		return nil
	}

	var parts []string
	var current strings.Builder
	braceLevel := 0

	flush := func() {
		if p := strings.TrimSpace(current.String()); p != "" {
			parts = append(parts, p)
		}
		current.Reset()
	}

	for _, char := range s {
		switch {
		case char == '{':
			braceLevel++
		case char == '}' && braceLevel > 0:
			braceLevel--
		case braceLevel == 0 && strings.ContainsRune(string(separators), char):
			flush()
			continue
		}
		current.WriteRune(char)
	}
	flush()

	return parts
}

var invalidPathCharsRegex = regexp.MustCompile(`[^\w\.\-]+`)

// ReplaceInvalidPathChars replaces characters in a path that are not word characters, dots, or hyphens with an underscore.
func ReplaceInvalidPathChars(path string) string {
	return invalidPathCharsRegex.ReplaceAllString(path, "_")
}

// SafeFileName reduces an untrusted name to a single path element: directory
// parts are dropped, unsafe characters replaced, and dot-only names rejected
// in favor of fallback.
func SafeFileName(name, fallback string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	name = ReplaceInvalidPathChars(name)
	if strings.Trim(name, "._") == "" {
		return fallback
	}
	return name
}
