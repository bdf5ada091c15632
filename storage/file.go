package storage

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores each entry as its own file under a directory
type File struct {
	dir string
}

// NewFile creates the directory if needed
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &File{dir: dir}, nil
}

// path maps a key to a file name that is safe on every filesystem
func (f *File) path(key string) string {
	return filepath.Join(f.dir, base64.RawURLEncoding.EncodeToString([]byte(key))+".json")
}

func (f *File) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read entry %q: %w", key, err)
	}
	return data, nil
}

// Set writes to a temp file and renames it over the entry, so a crash
// never leaves a half-written entry behind.
func (f *File) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(f.dir, ".entry-*")
	if err != nil {
		return fmt.Errorf("create temp entry: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("write entry %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close entry %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.path(key)); err != nil {
		return fmt.Errorf("commit entry %q: %w", key, err)
	}
	return nil
}

func (f *File) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove entry %q: %w", key, err)
	}
	return nil
}
