package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File is a KV persisted as a single JSON object on disk. Every write
// rewrites the whole file through a temporary file and a rename, so a crash
// leaves either the old or the new contents.
type File struct {
	mu      sync.Mutex
	path    string
	data    map[string]string
	loadErr error
}

// OpenFile loads the KV at path, creating the parent directory if needed. A
// missing or empty file is an empty store. So is a file that does not
// decode as a JSON object of strings: it is left on disk until the next
// write replaces it, and LoadErr reports why it was discarded.
func OpenFile(path string) (*File, error) {
	if err := EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	f := &File{path: path, data: make(map[string]string)}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return f, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(b) == 0 {
		return f, nil
	}
	if err := json.Unmarshal(b, &f.data); err != nil {
		f.data = make(map[string]string)
		f.loadErr = fmt.Errorf("decode %s: %w", path, err)
	}
	return f, nil
}

// Path returns the backing file path.
func (f *File) Path() string {
	return f.path
}

// LoadErr returns the decode error that made OpenFile start empty, or nil.
func (f *File) LoadErr() error {
	return f.loadErr
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	prev, had := f.data[key]
	f.data[key] = value
	if err := f.flush(); err != nil {
		if had {
			f.data[key] = prev
		} else {
			delete(f.data, key)
		}
		return err
	}
	return nil
}

func (f *File) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	removed := make(map[string]string)
	for _, k := range keys {
		if v, ok := f.data[k]; ok {
			removed[k] = v
			delete(f.data, k)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	if err := f.flush(); err != nil {
		for k, v := range removed {
			f.data[k] = v
		}
		return err
	}
	return nil
}

// flush writes the current contents atomically. Callers hold f.mu.
func (f *File) flush() error {
	b, err := json.MarshalIndent(f.data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", f.path, err)
	}
	return nil
}
