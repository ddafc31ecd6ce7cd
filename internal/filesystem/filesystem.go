package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Filesystem is the set of file operations the counter, the glob expander and
// the file reader need. Tests substitute MemFS.
type Filesystem interface {
	Stat(name string) (fs.FileInfo, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Getwd() (string, error)
	Abs(path string) (string, error)
	Open(name string) (fs.File, error)
}

// DefaultFS implements the Filesystem interface using the standard `os` and `filepath` packages.
// It represents the real, underlying filesystem of the host operating system.
type DefaultFS struct{}

func (DefaultFS) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

func (DefaultFS) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

func (DefaultFS) Getwd() (string, error) {
	return os.Getwd()
}

func (DefaultFS) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

func (DefaultFS) Open(name string) (fs.File, error) {
	return os.Open(name)
}
