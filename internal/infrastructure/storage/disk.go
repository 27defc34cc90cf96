// Package storage provides the content-store backends for uploaded assets:
// a local filesystem store and a MinIO object store.
package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/feedwire/feed-service/internal/core/ports"
)

// DiskStore keeps assets as plain files under a single upload directory.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if it does not exist yet.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &DiskStore{dir: dir}, nil
}

func (s *DiskStore) Put(_ context.Context, name string, upload ports.Upload) error {
	target, err := s.resolve(name)
	if err != nil {
		return err
	}

	f, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create asset file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, upload.Content); err != nil {
		return fmt.Errorf("write asset file: %w", err)
	}
	return nil
}

// Remove deletes the named file. A file that is already gone counts as
// removed.
func (s *DiskStore) Remove(_ context.Context, name string) error {
	target, err := s.resolve(name)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset file: %w", err)
	}
	return nil
}

// resolve joins the name onto the upload directory and rejects names that
// would escape it.
func (s *DiskStore) resolve(name string) (string, error) {
	target := filepath.Join(s.dir, filepath.FromSlash(name))
	if !strings.HasPrefix(target, filepath.Clean(s.dir)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid asset name %q", name)
	}
	return target, nil
}
