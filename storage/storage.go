// Package storage holds the blob backends. A backend owns the physical
// bytes of every file, keyed by the record's id and extension; metadata
// lives in the registry and never here.
package storage

import (
	"bitwise74/file-api/internal/model"
	"context"
	"fmt"

	"github.com/spf13/viper"
)

// Backend is the capability set every blob store implements. Load and
// Delete report absence as a FileNotFound taxonomy error so callers can
// tell "already gone" from "deleted".
type Backend interface {
	// Init runs one-time setup (root dir, bucket check). Idempotent,
	// called once before first use.
	Init(ctx context.Context) error

	SaveFile(ctx context.Context, f *model.File, data []byte) error
	LoadFile(ctx context.Context, f *model.File) ([]byte, error)
	DeleteFile(ctx context.Context, f *model.File) error
}

// New picks the configured backend. Config validation already rejected
// unknown types, so the default branch only guards against drift.
func New() (Backend, error) {
	switch t := viper.GetString("storage.type"); t {
	case "local":
		return NewLocal(viper.GetString("storage.files_dir")), nil
	case "s3":
		return NewS3()
	default:
		return nil, fmt.Errorf("unknown storage type %q", t)
	}
}
