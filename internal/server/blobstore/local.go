package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// LocalStore keeps blobs as plain files under a root directory and exposes
// them under a fixed public mount (e.g. "/uploads").
type LocalStore struct {
	rootDir     string
	publicMount string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(rootDir, publicMount string) (*LocalStore, error) {
	if err := os.MkdirAll(rootDir, 0o770); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", rootDir, err)
	}
	return &LocalStore{rootDir: rootDir, publicMount: publicMount}, nil
}

// RootDir returns the directory blobs live in, for static file serving.
func (s *LocalStore) RootDir() string {
	return s.rootDir
}

func (s *LocalStore) Save(_ context.Context, r io.Reader, originalName string) (*StoredFile, error) {
	name := GenerateName(originalName)

	f, err := os.Create(filepath.Join(s.rootDir, name))
	if err != nil {
		return nil, fmt.Errorf("create blob: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("write blob: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close blob: %w", err)
	}

	return &StoredFile{Name: name, PublicPath: s.PublicPath(name)}, nil
}

func (s *LocalStore) Remove(_ context.Context, name string) error {
	err := os.Remove(filepath.Join(s.rootDir, filepath.Base(name)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove blob: %w", err)
	}
	return nil
}

func (s *LocalStore) PublicPath(name string) string {
	return path.Join(s.publicMount, name)
}
