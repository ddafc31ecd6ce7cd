package filereader

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/IgorBayerl/WordCounter/go_word_counter/internal/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{name: "plain utf-8", data: []byte("Hello world!\nЭто тест."), want: "Hello world!\nЭто тест."},
		{name: "empty", data: []byte{}, want: ""},
		{name: "shorter than bom", data: []byte("a"), want: "a"},
		{name: "utf-8 bom stripped", data: append([]byte{0xEF, 0xBB, 0xBF}, "coffee"...), want: "coffee"},
		{name: "bom only", data: []byte{0xEF, 0xBB, 0xBF}, want: ""},
		{name: "bom kept mid-text", data: []byte("a\uFEFFb"), want: "a\uFEFFb"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mfs := filesystem.NewMemFS("/work")
			mfs.AddFile("/work/in.txt", tc.data)

			got, err := ReadText(mfs, "in.txt")
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadText_InvalidUTF8(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "truncated sequence", data: []byte{'o', 'k', ' ', 0xC3, 0x28}},
		{name: "latin-1", data: []byte("caf\xe9 au lait")},
		{name: "utf-16 le bom", data: []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00, ' ', 0x00, 'x', 0x00}},
		{name: "utf-16 be bom", data: []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}},
		{name: "invalid after utf-8 bom", data: []byte{0xEF, 0xBB, 0xBF, 'a', 0xFF}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mfs := filesystem.NewMemFS("/")
			mfs.AddFile("/bad.txt", tc.data)

			got, err := ReadText(mfs, "/bad.txt")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUTF8)
			assert.Empty(t, got)
		})
	}
}

func TestReadText_OpenAndReadFailures(t *testing.T) {
	mfs := filesystem.NewMemFS("/")
	mfs.AddFile("/locked.txt", []byte("secret"))
	mfs.FailOpen("/locked.txt", fs.ErrPermission)
	mfs.AddFile("/broken.txt", []byte("data"))
	ioErr := errors.New("device error")
	mfs.FailRead("/broken.txt", ioErr)

	_, err := ReadText(mfs, "/locked.txt")
	assert.ErrorIs(t, err, fs.ErrPermission)

	_, err = ReadText(mfs, "/broken.txt")
	assert.ErrorIs(t, err, ioErr)

	_, err = ReadText(mfs, "/missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReadText_DefaultFS(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.txt")
	require.NoError(t, os.WriteFile(path, []byte("Go testing sample"), 0o644))

	got, err := ReadText(filesystem.DefaultFS{}, path)
	require.NoError(t, err)
	assert.Equal(t, "Go testing sample", got)
}
