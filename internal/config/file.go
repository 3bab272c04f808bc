// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/pelletier/go-toml/v2"
)

const (
	// lockTimeout is the maximum time to wait for the lock of a file being
	// written.
	lockTimeout = 1 * time.Second

	lockRetryDelay = 100 * time.Millisecond
)

// PersistedFile is a TOML settings file for one scope. It is loaded once at
// construction; the file and its directory are only created on write.
type PersistedFile struct {
	path  string
	dir   string
	data  map[string]any
	isNew bool
}

// LoadFile reads the TOML file at path. A missing file is an empty layer; a
// file that cannot be parsed is a [*SourceError]. An empty path gives a
// detached, empty file that cannot be written.
func LoadFile(path string) (*PersistedFile, error) {
	f := &PersistedFile{
		data:  make(map[string]any),
		isNew: true,
	}
	if path == "" {
		return f, nil
	}

	f.path = filepath.Clean(path)
	f.dir = filepath.Dir(f.path)

	// #nosec G304: the path comes from the resolved configuration directories
	// or an explicit operator option.
	content, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return f, nil
		}
		return nil, &SourceError{Source: "file", Path: f.path, Err: err}
	}

	data, err := decodeTOML(content)
	if err != nil {
		return nil, &SourceError{Source: "file", Path: f.path, Err: err}
	}
	f.data = data
	f.isNew = false

	return f, nil
}

func decodeTOML(content []byte) (map[string]any, error) {
	data := make(map[string]any)
	if err := toml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	return data, nil
}

// Path returns the file location, empty for a detached file.
func (f *PersistedFile) Path() string { return f.path }

// Dir returns the parent directory of the file.
func (f *PersistedFile) Dir() string { return f.dir }

// IsNew reports whether the file did not exist when it was loaded.
func (f *PersistedFile) IsNew() bool { return f.isNew }

// Data returns a copy of the loaded content.
func (f *PersistedFile) Data() Tree {
	return Tree(cloneMap(f.data))
}

// Lookup implements [Source].
func (f *PersistedFile) Lookup(path []string) (any, bool) {
	return Tree(f.data).Lookup(path)
}

// Sections implements [Enumerator].
func (f *PersistedFile) Sections(path []string) []string {
	return MapSource(f.data).Sections(path)
}

// FilterInternal returns a copy of the file whose content has every
// "internal" section removed.
func (f *PersistedFile) FilterInternal() *PersistedFile {
	return &PersistedFile{
		path:  f.path,
		dir:   f.dir,
		data:  filterInternal(f.data),
		isNew: f.isNew,
	}
}

// Write serializes tree to the file, creating its directory if needed, and
// makes tree the new content of f.
func (f *PersistedFile) Write(ctx context.Context, tree Tree) error {
	if f.path == "" {
		return nil
	}
	if err := WriteTree(ctx, f.path, tree); err != nil {
		return err
	}
	f.data = cloneMap(tree)
	f.isNew = false
	return nil
}

// EncodeTree renders tree as TOML.
func EncodeTree(tree Tree) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(map[string]any(tree)); err != nil {
		return nil, fmt.Errorf("error serializing configuration: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTree writes tree as TOML to filename while holding a lock on
// "<filename>.lock". Parent directories are created as needed.
func WriteTree(ctx context.Context, filename string, tree Tree) error {
	content, err := EncodeTree(tree)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("error creating configuration directory %s: %w", dir, err)
		}
	}

	fileLock := flock.New(filename + ".lock")
	lockCtx, cancel := context.WithTimeout(ctx, lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("failed to acquire lock on %s: %w", filename, err)
	}
	if !locked {
		return fmt.Errorf("%w after %v: %s", errLockTimeout, lockTimeout, filename)
	}
	defer fileLock.Unlock()

	if err := os.WriteFile(filename, content, 0o600); err != nil {
		return fmt.Errorf("error writing configuration file %s: %w", filename, err)
	}
	return nil
}
