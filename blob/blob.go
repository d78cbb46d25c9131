// Package blob stores uploaded files and hands back stable public
// references that services record in rows.
package blob

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Store accepts an uploaded file and returns a reference usable later as an
// image attribute.
type Store interface {
	Save(ctx context.Context, ext string, r io.Reader) (string, error)
}

// PublicPrefix is the URL path uploads are served under.
const PublicPrefix = "/uploads/"

// DiskStore writes uploads into a directory, named by upload timestamp plus
// original extension. Same-millisecond collisions are accepted.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory uploads live in, for static file serving.
func (s *DiskStore) Dir() string { return s.dir }

func (s *DiskStore) Save(ctx context.Context, ext string, r io.Reader) (string, error) {
	name := strconv.FormatInt(time.Now().UnixMilli(), 10) + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}

	if _, err = io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}
	return PublicPrefix + name, nil
}

var _ Store = (*DiskStore)(nil)
