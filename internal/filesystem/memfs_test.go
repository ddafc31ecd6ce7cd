package filesystem

import (
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemFS_StatAndResolve(t *testing.T) {
	m := NewMemFS("/home/user")
	m.AddFile("docs/a.txt", []byte("hello"))

	info, err := m.Stat("/home/user/docs/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "a.txt", info.Name())
	assert.EqualValues(t, 5, info.Size())
	assert.False(t, info.IsDir())

	info, err = m.Stat("docs")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	for _, dir := range []string{"/", "/home", "/home/user"} {
		info, err := m.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
	}

	_, err = m.Stat("missing.txt")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	abs, err := m.Abs("../other/./x.txt")
	require.NoError(t, err)
	assert.Equal(t, "/home/other/x.txt", abs)

	wd, err := m.Getwd()
	require.NoError(t, err)
	assert.Equal(t, "/home/user", wd)
}

func TestMemFS_ReadDir(t *testing.T) {
	m := NewMemFS("/")
	m.AddFile("/d/b.txt", nil)
	m.AddFile("/d/a.txt", nil)
	m.AddFile("/d/sub/deep.txt", nil)
	m.AddFile("/dx/other.txt", nil)

	entries, err := m.ReadDir("/d")
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"a.txt", "b.txt", "sub"}, names)
	assert.True(t, entries[2].IsDir())

	_, err = m.ReadDir("/d/a.txt")
	assert.ErrorIs(t, err, fs.ErrInvalid)
	_, err = m.ReadDir("/nope")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestMemFS_OpenAndFailures(t *testing.T) {
	m := NewMemFS("/")
	m.AddFile("/ok.txt", []byte("content"))
	m.AddFile("/locked.txt", []byte("x"))
	m.AddFile("/broken.txt", []byte("x"))
	m.FailOpen("/locked.txt", fs.ErrPermission)
	readErr := errors.New("device gone")
	m.FailRead("/broken.txt", readErr)

	f, err := m.Open("/ok.txt")
	require.NoError(t, err)
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
	require.NoError(t, f.Close())
	assert.ErrorIs(t, f.Close(), fs.ErrClosed)

	_, err = m.Open("/locked.txt")
	assert.ErrorIs(t, err, fs.ErrPermission)

	f, err = m.Open("/broken.txt")
	require.NoError(t, err)
	_, err = io.ReadAll(f)
	assert.ErrorIs(t, err, readErr)
}

func TestMemFS_AddFileReplaces(t *testing.T) {
	m := NewMemFS("/")
	m.AddFile("/f.txt", []byte("one"))
	m.AddFile("/f.txt", []byte("three"))

	info, err := m.Stat("/f.txt")
	require.NoError(t, err)
	assert.EqualValues(t, 5, info.Size())
}

var _ Filesystem = (*MemFS)(nil)
var _ Filesystem = DefaultFS{}
