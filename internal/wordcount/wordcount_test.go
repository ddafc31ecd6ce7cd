package wordcount

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filereader"
	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
)

func newTestCounter(t *testing.T, files map[string]string) (*Counter, *filesystem.MemFS) {
	t.Helper()
	mfs := filesystem.NewMemFS("/data")
	for name, content := range files {
		mfs.AddFile(name, []byte(content))
	}
	return NewCounter(mfs, nil), mfs
}

func TestCountWords_SeedCases(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  string
		want    Result
	}{
		{
			name:    "valid file with target",
			content: "I love coffee! Coffee is great! No tea, just coffee!",
			target:  "coffee",
			want:    Result{TotalWords: 10, MatchCount: 3},
		},
		{
			name:    "valid file without target",
			content: "I love tea! Tea is great! Only tea!",
			want:    Result{TotalWords: 8, MatchCount: 0},
		},
		{
			name:    "empty file",
			content: "",
			target:  "coffee",
			want:    Result{},
		},
		{
			name:    "empty target",
			content: "I love coffee!",
			target:  "",
			want:    Result{TotalWords: 3, MatchCount: 0},
		},
		{
			name:    "target inside another word counts",
			content: "instead of tea",
			target:  "tea",
			want:    Result{TotalWords: 3, MatchCount: 2},
		},
		{
			name:    "target inside larger word",
			content: "steam teapot Tea",
			target:  "tea",
			want:    Result{TotalWords: 3, MatchCount: 3},
		},
		{
			name:    "whitespace runs collapse",
			content: "  \tHello,   world!\nThis is a test.  \r\n",
			target:  "IS",
			want:    Result{TotalWords: 6, MatchCount: 2},
		},
		{
			name:    "unicode words",
			content: "Привет мир ПРИВЕТ",
			target:  "привет",
			want:    Result{TotalWords: 3, MatchCount: 2},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestCounter(t, map[string]string{"/data/mock_file.txt": tc.content})

			got, err := c.CountWords("mock_file.txt", tc.target)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("CountWords() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCountWords_CaseInsensitiveTarget(t *testing.T) {
	c, _ := newTestCounter(t, map[string]string{
		"/data/f.txt": "Coffee COFFEE coffee cOfFeEhouse tea",
	})

	base, err := c.CountWords("/data/f.txt", "coffee")
	require.NoError(t, err)
	for _, target := range []string{"COFFEE", "Coffee", "cOFFEE"} {
		got, err := c.CountWords("/data/f.txt", target)
		require.NoError(t, err)
		assert.Equal(t, base, got, "target %q", target)
	}
	assert.Equal(t, Result{TotalWords: 5, MatchCount: 4}, base)
}

func TestCountText_SubstringContainment(t *testing.T) {
	// Matching is containment: "instead" holds "tea", "steam" does not.
	tests := []struct {
		word  string
		match bool
	}{
		{word: "instead", match: true},
		{word: "tea", match: true},
		{word: "TEAPOT", match: true},
		{word: "steam", match: false},
		{word: "te", match: false},
		{word: "t-e-a", match: false},
	}
	for _, tc := range tests {
		got := CountText(tc.word, "tea")
		want := 0
		if tc.match {
			want = 1
		}
		assert.Equal(t, Result{TotalWords: 1, MatchCount: want}, got, "word %q", tc.word)
	}
}

func TestCountText_CaseFolding(t *testing.T) {
	tests := []struct {
		name    string
		content string
		targets []string
		want    int
	}{
		{name: "dotless i", content: "Istanbul ıstanbul istanbul", targets: []string{"ı", "I", "i"}, want: 3},
		{name: "long s", content: "ſun Sun sun", targets: []string{"ſ", "S", "s"}, want: 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for _, target := range tc.targets {
				got := CountText(tc.content, target)
				assert.Equal(t, tc.want, got.MatchCount, "target %q", target)
				assert.Equal(t, got, CountText(tc.content, strings.ToUpper(target)))
				assert.Equal(t, got, CountText(tc.content, strings.ToLower(target)))
			}
		})
	}
}

func TestCountWords_NotFound(t *testing.T) {
	c, mfs := newTestCounter(t, nil)
	mfs.AddDir("/data/folder")

	_, err := c.CountWords("/nonexistent/path", "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrIOFailure)
	assert.Contains(t, err.Error(), "/nonexistent/path")

	_, err = c.CountWords("/data/folder", "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountWords_IOFailure(t *testing.T) {
	c, mfs := newTestCounter(t, map[string]string{
		"/data/locked.txt": "some words",
		"/data/broken.txt": "some words",
	})
	mfs.AddFile("/data/latin1.txt", []byte("caf\xe9 au lait"))
	mfs.AddFile("/data/utf16.txt", []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00, ' ', 0x00, 'x', 0x00})
	mfs.FailOpen("/data/locked.txt", fs.ErrPermission)
	deviceErr := errors.New("input/output error")
	mfs.FailRead("/data/broken.txt", deviceErr)

	tests := []struct {
		path  string
		cause error
	}{
		{path: "/data/locked.txt", cause: fs.ErrPermission},
		{path: "/data/broken.txt", cause: deviceErr},
		{path: "/data/latin1.txt", cause: filereader.ErrInvalidUTF8},
		{path: "/data/utf16.txt", cause: filereader.ErrInvalidUTF8},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			res, err := c.CountWords(tc.path, "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrIOFailure)
			assert.NotErrorIs(t, err, ErrNotFound)
			assert.Equal(t, Result{}, res)
			if tc.cause != nil {
				assert.ErrorIs(t, err, tc.cause)
			}
		})
	}
}

func TestCountWords_HostFilesystem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.txt")
	require.NoError(t, os.WriteFile(path, []byte("Hello world!\nЭто тест."), 0o644))

	got, err := CountWords(path, "")
	require.NoError(t, err)
	assert.Equal(t, Result{TotalWords: 4}, got)

	_, err = CountWords(filepath.Join(t.TempDir(), "definitely_no_such_file.txt"), "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCountText_Properties(t *testing.T) {
	contents := []string{
		"",
		"   ",
		"one",
		"I love coffee! Coffee is great! No tea, just coffee!",
		strings.Repeat("ab ", 50),
		"aaaa aaa aa a",
	}
	targets := []string{"", "a", "A", "coffee", "zz", " ", "aa"}

	for _, content := range contents {
		total := len(strings.Fields(content))
		for _, target := range targets {
			res := CountText(content, target)
			assert.Equal(t, total, res.TotalWords)
			assert.LessOrEqual(t, res.MatchCount, res.TotalWords)
			assert.GreaterOrEqual(t, res.MatchCount, 0)
			assert.Equal(t, res, CountText(content, strings.ToUpper(target)))
			assert.Equal(t, res, CountText(content, strings.ToLower(target)))
		}
		assert.Zero(t, CountText(content, "").MatchCount)
	}
}
