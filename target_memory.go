// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package sixpack

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// TargetMemory is an in-memory filesystem implementation of [Target]. Extracted
// files can be read back with the [io/fs.FS] interface. Permissions on entries
// are recorded but not enforced.
type TargetMemory struct {
	mu    sync.RWMutex
	files map[string]*memoryEntry
}

var (
	_ Target        = (*TargetMemory)(nil)
	_ fs.ReadFileFS = (*TargetMemory)(nil)
	_ fs.ReadDirFS  = (*TargetMemory)(nil)
)

// NewTargetMemory creates a new in-memory filesystem.
func NewTargetMemory() *TargetMemory {
	return &TargetMemory{files: make(map[string]*memoryEntry)}
}

// memoryEntry is an entry in the in-memory filesystem
type memoryEntry struct {
	name    string
	mode    fs.FileMode
	modTime time.Time
	data    []byte
}

// memoryPath converts a target path into a key of the in-memory filesystem.
func memoryPath(name string) (string, error) {
	p := path.Clean(filepath.ToSlash(name))
	if !fs.ValidPath(p) {
		return "", fmt.Errorf("%w: %s", fs.ErrInvalid, name)
	}
	return p, nil
}

// CreateFile creates a new file in the in-memory filesystem and returns it for
// writing. If the overwrite flag is set to false and the file already exists, an
// error is returned. Written data is visible immediately.
func (m *TargetMemory) CreateFile(name string, mode fs.FileMode, overwrite bool) (io.WriteCloser, error) {
	p, err := memoryPath(name)
	if err != nil {
		return nil, err
	}
	if p == "." {
		return nil, fmt.Errorf("%w: %s", fs.ErrInvalid, name)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if e, ok := m.files[p]; ok {
		if !overwrite {
			return nil, fmt.Errorf("%w: %s", fs.ErrExist, name)
		}
		if e.mode.IsDir() {
			return nil, fmt.Errorf("cannot overwrite directory: %s", name)
		}
	}

	e := &memoryEntry{name: path.Base(p), mode: mode.Perm(), modTime: now()}
	m.files[p] = e
	return &memoryWriter{m: m, e: e}, nil
}

// CreateDir creates a new directory and all missing parents in the in-memory
// filesystem. If the directory already exists, nothing is done.
func (m *TargetMemory) CreateDir(name string, mode fs.FileMode) error {
	p, err := memoryPath(name)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var missing []string
	for dir := p; dir != "."; dir = path.Dir(dir) {
		if e, ok := m.files[dir]; ok {
			if !e.mode.IsDir() {
				return fmt.Errorf("not a directory: %s", dir)
			}
			continue
		}
		missing = append(missing, dir)
	}
	for _, dir := range missing {
		m.files[dir] = &memoryEntry{name: path.Base(dir), mode: mode.Perm() | fs.ModeDir, modTime: now()}
	}
	return nil
}

// Lstat returns the FileInfo for the given path. The root "." always exists.
func (m *TargetMemory) Lstat(name string) (fs.FileInfo, error) {
	p, err := memoryPath(name)
	if err != nil {
		return nil, err
	}
	if p == "." {
		return &memoryFileInfo{name: ".", mode: fs.ModeDir | 0755}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.files[p]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return e.info(), nil
}

// Open opens the named file for reading. Directories cannot be opened.
func (m *TargetMemory) Open(name string) (fs.File, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrInvalid}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	if e.mode.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fmt.Errorf("is a directory")}
	}
	return &memoryFile{info: e.info(), r: bytes.NewReader(bytes.Clone(e.data))}, nil
}

// ReadFile returns the content of the named file.
func (m *TargetMemory) ReadFile(name string) ([]byte, error) {
	f, err := m.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ReadDir returns the entries of the named directory sorted by name.
func (m *TargetMemory) ReadDir(name string) ([]fs.DirEntry, error) {
	if !fs.ValidPath(name) {
		return nil, &fs.PathError{Op: "readdir", Path: name, Err: fs.ErrInvalid}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var entries []fs.DirEntry
	for p, e := range m.files {
		if path.Dir(p) == name {
			entries = append(entries, fs.FileInfoToDirEntry(e.info()))
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// info returns a snapshot of the entry's metadata
func (e *memoryEntry) info() *memoryFileInfo {
	return &memoryFileInfo{name: e.name, size: int64(len(e.data)), mode: e.mode, modTime: e.modTime}
}

// memoryWriter appends to an entry of a TargetMemory
type memoryWriter struct {
	m      *TargetMemory
	e      *memoryEntry
	closed bool
}

// Write appends p to the file.
func (w *memoryWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fs.ErrClosed
	}
	w.m.mu.Lock()
	defer w.m.mu.Unlock()
	w.e.data = append(w.e.data, p...)
	w.e.modTime = now()
	return len(p), nil
}

// Close finishes the file. Further writes fail.
func (w *memoryWriter) Close() error {
	if w.closed {
		return fs.ErrClosed
	}
	w.closed = true
	return nil
}

// memoryFile is a file opened for reading
type memoryFile struct {
	info *memoryFileInfo
	r    *bytes.Reader
}

func (f *memoryFile) Stat() (fs.FileInfo, error) { return f.info, nil }
func (f *memoryFile) Read(p []byte) (int, error) { return f.r.Read(p) }
func (f *memoryFile) Close() error               { return nil }

// memoryFileInfo is a FileInfo implementation for the in-memory filesystem
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
}

func (fi *memoryFileInfo) Name() string       { return fi.name }
func (fi *memoryFileInfo) Size() int64        { return fi.size }
func (fi *memoryFileInfo) Mode() fs.FileMode  { return fi.mode }
func (fi *memoryFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *memoryFileInfo) IsDir() bool        { return fi.mode.IsDir() }
func (fi *memoryFileInfo) Sys() any           { return nil }
