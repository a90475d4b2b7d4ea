// Package filestore persists uploaded blobs on the local filesystem.
package filestore

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/lernfeld/kursadmin/core/instructor"
)

type store struct {
	root string
}

var _ instructor.FileStore = (*store)(nil)

// NewStore returns a FileStore rooted at dir, creating it if needed.
func NewStore(dir string) (instructor.FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "creating file store dir")
	}
	return &store{root: dir}, nil
}

// path resolves name inside the root; name is always a generated
// identifier but a rogue separator must not escape the store.
func (s *store) path(name string) string {
	return filepath.Join(s.root, filepath.Base(name))
}

func (s *store) Save(name string, r io.Reader) (int64, error) {
	f, err := os.Create(s.path(name))
	if err != nil {
		return 0, errors.Wrap(err, "creating blob")
	}
	defer f.Close()

	n, err := io.Copy(f, r)
	if err != nil {
		return 0, errors.Wrap(err, "writing blob")
	}
	return n, nil
}

func (s *store) Open(name string) (io.ReadCloser, error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, errors.Wrap(err, "opening blob")
	}
	return f, nil
}

func (s *store) Remove(name string) error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "removing blob")
	}
	return nil
}
