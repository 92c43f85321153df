package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var ErrInvalidKey = errors.New("invalid evidence key")

// DiskEvidenceStore keeps evidence files under a local directory. The
// reference it hands out is the path relative to that directory.
type DiskEvidenceStore struct {
	root string
}

func NewDiskEvidenceStore(root string) (*DiskEvidenceStore, error) {
	err := os.MkdirAll(root, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create evidence directory: %w", err)
	}

	return &DiskEvidenceStore{root: root}, nil
}

func (s *DiskEvidenceStore) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return "", err
	}
	defer os.Remove(f.Name())

	_, err = io.Copy(f, io.LimitReader(body, size))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("write evidence: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	err = os.Rename(f.Name(), path)
	if err != nil {
		return "", fmt.Errorf("write evidence: %w", err)
	}

	return key, nil
}

func (s *DiskEvidenceStore) Delete(ctx context.Context, ref string) error {
	path, err := s.path(ref)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	return nil
}

func (s *DiskEvidenceStore) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || key == "." || key == ".." {
		return "", ErrInvalidKey
	}

	return filepath.Join(s.root, key), nil
}
