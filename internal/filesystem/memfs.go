package filesystem

import (
	"bytes"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemFS is an in-memory, slash-separated Filesystem. Paths are resolved
// against the configured working directory. It is safe for concurrent use.
type MemFS struct {
	mu      sync.RWMutex
	cwd     string
	entries map[string]*memEntry
}

type memEntry struct {
	name    string
	data    []byte
	dir     bool
	modTime time.Time
	openErr error
	readErr error
}

// NewMemFS returns an empty filesystem whose working directory is cwd.
// The root and cwd directories always exist.
func NewMemFS(cwd string) *MemFS {
	m := &MemFS{
		cwd:     path.Clean("/" + cwd),
		entries: make(map[string]*memEntry),
	}
	m.AddDir(m.cwd)
	return m
}

func (m *MemFS) resolve(name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	return path.Join(m.cwd, name)
}

// AddFile creates or replaces a regular file, creating missing parents.
func (m *MemFS) AddFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := m.resolve(name)
	m.mkdirAllLocked(path.Dir(p))
	m.entries[p] = &memEntry{name: path.Base(p), data: data, modTime: time.Now()}
}

// AddDir creates a directory and its parents.
func (m *MemFS) AddDir(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mkdirAllLocked(m.resolve(name))
}

func (m *MemFS) mkdirAllLocked(p string) {
	for {
		if e, ok := m.entries[p]; ok && e.dir {
			return
		}
		m.entries[p] = &memEntry{name: path.Base(p), dir: true, modTime: time.Now()}
		if p == "/" {
			return
		}
		p = path.Dir(p)
	}
}

// FailOpen makes every Open of name return err.
func (m *MemFS) FailOpen(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[m.resolve(name)]; ok {
		e.openErr = err
	}
}

// FailRead makes reads from an opened name return err.
func (m *MemFS) FailRead(name string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.entries[m.resolve(name)]; ok {
		e.readErr = err
	}
}

func (m *MemFS) lookup(op, name string) (*memEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entries[m.resolve(name)]
	if !ok {
		return nil, &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
	}
	return e, nil
}

func (m *MemFS) Stat(name string) (fs.FileInfo, error) {
	e, err := m.lookup("stat", name)
	if err != nil {
		return nil, err
	}
	return memInfo{e}, nil
}

func (m *MemFS) ReadDir(name string) ([]fs.DirEntry, error) {
	e, err := m.lookup("readdir", name)
	if err != nil {
		return nil, err
	}
	if !e.dir {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	dir := m.resolve(name)
	prefix := dir
	if prefix != "/" {
		prefix += "/"
	}

	m.mu.RLock()
	var out []fs.DirEntry
	for p, child := range m.entries {
		if p == dir || !strings.HasPrefix(p, prefix) || strings.Contains(p[len(prefix):], "/") {
			continue
		}
		out = append(out, fs.FileInfoToDirEntry(memInfo{child}))
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}

func (m *MemFS) Getwd() (string, error) {
	return m.cwd, nil
}

func (m *MemFS) Abs(name string) (string, error) {
	return m.resolve(name), nil
}

func (m *MemFS) Open(name string) (fs.File, error) {
	e, err := m.lookup("open", name)
	if err != nil {
		return nil, err
	}
	if e.openErr != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: e.openErr}
	}
	return &memHandle{entry: e, r: bytes.NewReader(e.data)}, nil
}

type memHandle struct {
	entry  *memEntry
	r      *bytes.Reader
	closed bool
}

func (h *memHandle) Stat() (fs.FileInfo, error) { return memInfo{h.entry}, nil }

func (h *memHandle) Read(p []byte) (int, error) {
	if h.closed {
		return 0, fs.ErrClosed
	}
	if h.entry.readErr != nil {
		return 0, h.entry.readErr
	}
	return h.r.Read(p)
}

func (h *memHandle) Close() error {
	if h.closed {
		return fs.ErrClosed
	}
	h.closed = true
	return nil
}

type memInfo struct{ e *memEntry }

func (i memInfo) Name() string       { return i.e.name }
func (i memInfo) Size() int64        { return int64(len(i.e.data)) }
func (i memInfo) ModTime() time.Time { return i.e.modTime }
func (i memInfo) IsDir() bool        { return i.e.dir }
func (i memInfo) Sys() any           { return nil }

func (i memInfo) Mode() fs.FileMode {
	if i.e.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
