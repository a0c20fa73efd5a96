package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File persists each collection as a JSON file under a data directory. This
// is the single-profile local backend: one directory plays the role the
// browser's key-value storage played in the original demo.
type File struct {
	dir string
}

func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", errors.Join(ErrUnavailable, err))
	}
	return &File{dir: dir}, nil
}

func (f *File) path(collection string) string {
	return filepath.Join(f.dir, collection+".json")
}

func (f *File) Load(_ context.Context, collection string) ([]byte, error) {
	data, err := os.ReadFile(f.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, errors.Join(ErrUnavailable, err))
	}
	return data, nil
}

// Save writes to a temp file and renames it over the collection file, so a
// crash mid-write never leaves a truncated document behind.
func (f *File) Save(_ context.Context, collection string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, collection+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", errors.Join(ErrUnavailable, err))
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write collection %s: %w", collection, errors.Join(ErrUnavailable, err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", errors.Join(ErrUnavailable, err))
	}
	if err := os.Rename(tmpName, f.path(collection)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace collection %s: %w", collection, errors.Join(ErrUnavailable, err))
	}
	return nil
}
