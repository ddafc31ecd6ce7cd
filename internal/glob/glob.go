// Package glob provides functionality for finding files and directories
// by matching their path names against a pattern. Supported syntax:
//   - `?`: Matches any single character in a file or directory name.
//   - `*`: Matches zero or more characters in a file or directory name.
//   - `**`: Matches zero or more recursive directories.
//   - `[...]`: Matches a set of characters in a name (e.g., `[abc]`, `[a-z]`).
//   - `{group1,group2,...}`: Matches any of the pattern groups.
//
// Case-insensitivity is the default behavior for matching.
package glob

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
)

var (
	// regexSpecialChars are characters that have special meaning in regular expressions.
	// Used when converting glob patterns to regex to know which characters to escape.
	regexSpecialChars = map[rune]bool{
		'[': true, '\\': true, '^': true, '$': true, '.': true, '|': true,
		'?': true, '*': true, '+': true, '(': true, ')': true, '{': true, '}': true,
	}

	// regexOrStringCache caches compiled segment matchers.
	// Key: pattern segment + "|" + case-sensitivity flag (e.g., "pat?tern*|true")
	regexOrStringCache = make(map[string]*RegexOrString)
	cacheMutex         sync.Mutex
)

// RegexOrString holds either a compiled regex for glob matching or a literal string pattern
// if the glob segment contained no wildcards.
type RegexOrString struct {
	CompiledRegex  *regexp.Regexp
	IsRegex        bool
	LiteralPattern string
	IgnoreCase     bool
}

// IsMatch checks if the input string matches this RegexOrString.
func (ros *RegexOrString) IsMatch(input string) bool {
	if ros.IsRegex {
		return ros.CompiledRegex.MatchString(input)
	}
	if ros.IgnoreCase {
		return strings.EqualFold(ros.LiteralPattern, input)
	}
	return ros.LiteralPattern == input
}

// Glob holds the glob pattern and matching options.
type Glob struct {
	// OriginalPattern is the glob pattern string as provided by the user.
	OriginalPattern string
	// IgnoreCase specifies whether path matching should be case-insensitive. Defaults to true.
	IgnoreCase bool

	fs filesystem.Filesystem
}

// Option configures a Glob.
type Option func(*Glob)

// WithIgnoreCase sets case-insensitive matching on or off.
func WithIgnoreCase(ignore bool) Option {
	return func(g *Glob) { g.IgnoreCase = ignore }
}

// NewGlob creates a new Glob instance over fsys. IgnoreCase defaults to true.
func NewGlob(pattern string, fsys filesystem.Filesystem, opts ...Option) *Glob {
	g := &Glob{
		OriginalPattern: pattern,
		IgnoreCase:      true,
		fs:              fsys,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// String returns the original pattern string.
func (g *Glob) String() string {
	return g.OriginalPattern
}

// ExpandNames returns the absolute, de-duplicated and sorted paths of every
// file and directory matching the pattern. Unreadable or vanished directories
// are skipped; malformed patterns are reported as errors.
func (g *Glob) ExpandNames() ([]string, error) {
	if g.OriginalPattern == "" {
		return []string{}, nil
	}

	groups, err := ungroup(g.OriginalPattern)
	if err != nil {
		return nil, fmt.Errorf("error ungrouping pattern '%s': %w", g.OriginalPattern, err)
	}

	seen := make(map[string]struct{})
	results := []string{}
	for _, group := range groups {
		matches, err := g.expandGroup(group)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if _, dup := seen[m]; !dup {
				seen[m] = struct{}{}
				results = append(results, m)
			}
		}
	}
	sort.Strings(results)
	return results, nil
}

// expandGroup matches one brace-free pattern segment by segment, starting at
// the filesystem root of its absolute form.
func (g *Glob) expandGroup(pattern string) ([]string, error) {
	abs, err := g.fs.Abs(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve pattern '%s': %w", pattern, err)
	}

	volume := filepath.VolumeName(abs)
	root := volume + string(filepath.Separator)
	var segments []string
	for _, s := range strings.Split(abs[len(volume):], string(filepath.Separator)) {
		if s != "" {
			segments = append(segments, s)
		}
	}

	if len(segments) == 0 {
		if _, err := g.fs.Stat(root); err != nil {
			return nil, nil
		}
		return []string{root}, nil
	}

	current := []string{root}
	for i, segment := range segments {
		last := i == len(segments)-1
		if segment == "**" {
			current = g.descend(current, !last)
			continue
		}

		matcher, err := g.createRegexOrString(segment)
		if err != nil {
			return nil, err
		}
		current = g.matchChildren(current, matcher, !last)
		if len(current) == 0 {
			return nil, nil
		}
	}
	return current, nil
}

// matchChildren lists every directory in dirs and keeps the entries whose
// name matches. When dirOnly is set, files are dropped.
func (g *Glob) matchChildren(dirs []string, matcher *RegexOrString, dirOnly bool) []string {
	var out []string
	for _, dir := range dirs {
		entries, err := g.fs.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if dirOnly && !entry.IsDir() {
				continue
			}
			if matcher.IsMatch(entry.Name()) {
				out = append(out, filepath.Join(dir, entry.Name()))
			}
		}
	}
	return out
}

// descend implements `**`: each directory plus everything below it. In the
// middle of a pattern only directories are kept; as the final segment files
// are returned too.
func (g *Glob) descend(dirs []string, dirOnly bool) []string {
	var out []string
	seen := make(map[string]struct{})
	var walk func(dir string)
	walk = func(dir string) {
		if _, dup := seen[dir]; dup {
			return
		}
		seen[dir] = struct{}{}
		out = append(out, dir)

		entries, err := g.fs.ReadDir(dir)
		if err != nil {
			return
		}
		for _, entry := range entries {
			child := filepath.Join(dir, entry.Name())
			if entry.IsDir() {
				walk(child)
			} else if !dirOnly {
				out = append(out, child)
			}
		}
	}
	for _, dir := range dirs {
		walk(dir)
	}
	return out
}

// createRegexOrString compiles a glob pattern segment into a RegexOrString instance,
// reusing earlier compilations of the same segment.
func (g *Glob) createRegexOrString(patternSegment string) (*RegexOrString, error) {
	cacheKey := fmt.Sprintf("%s|%t", patternSegment, g.IgnoreCase)

	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	if cached, found := regexOrStringCache[cacheKey]; found {
		return cached, nil
	}

	ros := &RegexOrString{
		LiteralPattern: patternSegment,
		IgnoreCase:     g.IgnoreCase,
	}
	if strings.ContainsAny(patternSegment, "*?[]") {
		regexPatternStr, err := globToRegexPattern(patternSegment, g.IgnoreCase)
		if err != nil {
			return nil, fmt.Errorf("failed to convert glob segment '%s' to regex pattern: %w", patternSegment, err)
		}
		re, err := regexp.Compile(regexPatternStr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile regex '%s' from glob segment '%s': %w", regexPatternStr, patternSegment, err)
		}
		ros.CompiledRegex = re
		ros.IsRegex = true
	}

	regexOrStringCache[cacheKey] = ros
	return ros, nil
}

// globToRegexPattern converts a glob pattern segment to a Go regular expression string.
func globToRegexPattern(globSegment string, ignoreCase bool) (string, error) {
	var regex strings.Builder
	if ignoreCase {
		regex.WriteString("(?i)")
	}
	regex.WriteRune('^')

	inCharClass := false
	for _, r := range globSegment {
		if inCharClass {
			if r == ']' {
				inCharClass = false
			}
			regex.WriteRune(r)
			continue
		}

		switch r {
		case '*':
			regex.WriteString(".*")
		case '?':
			regex.WriteRune('.')
		case '[':
			inCharClass = true
			regex.WriteRune(r)
		case ']':
			return "", fmt.Errorf("unmatched ']' in glob segment: %s", globSegment)
		default:
			if regexSpecialChars[r] {
				regex.WriteRune('\\')
			}
			regex.WriteRune(r)
		}
	}

	if inCharClass {
		return "", fmt.Errorf("unterminated character class in glob segment: %s", globSegment)
	}
	regex.WriteRune('$')
	return regex.String(), nil
}

// ungroup handles brace expansion, e.g., "{a,b}c" -> ["ac", "bc"].
// It supports nested braces and multiple groups.
func ungroup(path string) ([]string, error) {
	if !strings.ContainsAny(path, "{}") {
		return []string{path}, nil
	}

	level := 0
	open := -1
	for i, char := range path {
		switch char {
		case '{':
			if level == 0 {
				open = i
			}
			level++
		case '}':
			level--
			if level < 0 {
				return nil, fmt.Errorf("unbalanced braces in pattern: %s", path)
			}
			if level > 0 {
				continue
			}

			prefix, suffix := path[:open], path[i+1:]
			expandedSuffixes, err := ungroup(suffix)
			if err != nil {
				return nil, err
			}

			var results []string
			for _, part := range splitTopLevel(path[open+1 : i]) {
				expandedParts, err := ungroup(prefix + part)
				if err != nil {
					return nil, err
				}
				for _, p := range expandedParts {
					for _, s := range expandedSuffixes {
						results = append(results, p+s)
					}
				}
			}
			return results, nil
		}
	}

	if level != 0 {
		return nil, fmt.Errorf("unbalanced braces in pattern: %s", path)
	}
	return []string{path}, nil
}

// splitTopLevel splits group content on commas that are not nested in braces.
func splitTopLevel(content string) []string {
	var parts []string
	var part strings.Builder
	depth := 0
	for _, c := range content {
		switch {
		case c == '{':
			depth++
		case c == '}':
			depth--
		case c == ',' && depth == 0:
			parts = append(parts, part.String())
			part.Reset()
			continue
		}
		part.WriteRune(c)
	}
	return append(parts, part.String())
}

// GetFiles is the public entry point for globbing on the host filesystem.
// It returns absolute paths to matching files and directories.
func GetFiles(pattern string) ([]string, error) {
	if pattern == "" {
		return []string{}, nil
	}
	return NewGlob(pattern, filesystem.DefaultFS{}).ExpandNames()
}
