package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalStore writes under Dir; files are served statically at URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

var _ PhotoStore = (*LocalStore)(nil)

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, URLPrefix: urlPrefix}, nil
}

func (s *LocalStore) Save(_ context.Context, name, _ string, r io.Reader) (string, error) {
	name = filepath.Base(name)
	full := filepath.Join(s.Dir, name)

	tmp, err := os.CreateTemp(s.Dir, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), full); err != nil {
		return "", err
	}

	return path.Join(s.URLPrefix, name), nil
}
