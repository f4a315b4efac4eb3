// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/registry"
	"context"
	"mime/multipart"
	"path"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/viper"
)

const maxFileNameSize = 255

// FileValidator checks an uploaded file against the extension allowlist,
// the size cap and the owner's storage quota. It returns the sniffed mime
// type of the content so headers never have to be trusted.
func FileValidator(ctx context.Context, fh *multipart.FileHeader, data []byte, reg registry.Registry, userID string) (mime string, err error) {
	if fh == nil || len(data) == 0 {
		return "", apperr.New(apperr.Validation)
	}

	if len(fh.Filename) > maxFileNameSize {
		return "", apperr.New(apperr.Validation)
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(fh.Filename)), ".")
	if ext == "" {
		return "", apperr.New(apperr.FileExtNotSupport)
	}

	// An empty allowlist accepts everything
	allowed := viper.GetStringSlice("upload.allowed_exts")
	if len(allowed) > 0 && !slices.Contains(allowed, ext) {
		return "", apperr.New(apperr.FileExtNotSupport)
	}

	if int64(len(data)) > viper.GetInt64("upload.max_size") {
		return "", apperr.New(apperr.Validation)
	}

	if reg != nil {
		used, err := reg.UsedStorage(ctx, userID)
		if err != nil {
			return "", err
		}

		if used+int64(len(data)) > viper.GetInt64("storage.max_usage") {
			return "", apperr.New(apperr.StorageLimit)
		}
	}

	return mimetype.Detect(data).String(), nil
}
