package storage

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local stores blobs as plain files under a single root directory. This
// is the reference backend.
type Local struct {
	filesDir string
}

func NewLocal(filesDir string) *Local {
	return &Local{filesDir: filesDir}
}

func (l *Local) Init(_ context.Context) error {
	if err := os.MkdirAll(l.filesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create files dir, %w", err)
	}

	return nil
}

func (l *Local) path(f *model.File) string {
	return filepath.Join(l.filesDir, f.BlobKey())
}

func (l *Local) SaveFile(_ context.Context, f *model.File, data []byte) error {
	if data == nil {
		return apperr.New(apperr.Validation)
	}

	if err := os.MkdirAll(l.filesDir, 0o755); err != nil {
		return apperr.Wrap(apperr.Internal, err)
	}

	// Fresh IDs make collisions impossible in normal operation, so an
	// existing key is simply rewritten
	if err := os.WriteFile(l.path(f), data, 0o644); err != nil {
		return apperr.Wrap(apperr.Internal, err)
	}

	return nil
}

func (l *Local) LoadFile(_ context.Context, f *model.File) ([]byte, error) {
	data, err := os.ReadFile(l.path(f))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.Wrap(apperr.FileNotFound, err)
		}

		return nil, apperr.Wrap(apperr.Internal, err)
	}

	return data, nil
}

func (l *Local) DeleteFile(_ context.Context, f *model.File) error {
	if err := os.Remove(l.path(f)); err != nil {
		if os.IsNotExist(err) {
			return apperr.Wrap(apperr.FileNotFound, err)
		}

		return apperr.Wrap(apperr.Internal, err)
	}

	return nil
}
