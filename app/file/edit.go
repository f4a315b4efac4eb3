package file

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/access"
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/pkg/middleware"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fileEditOpts struct {
	Name   *string `json:"name,omitempty"`
	Public *bool   `json:"public,omitempty"`
}

// FileEdit updates a file's name or visibility. The extension is bound
// to the blob key and stays immutable, so a submitted name has any
// matching extension stripped.
func FileEdit(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	fileID := c.Param("id")
	if fileID == "" {
		apperr.Abort(c, apperr.New(apperr.Validation))
		return
	}

	var data fileEditOpts
	if err := c.BindJSON(&data); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation, err))
		return
	}

	if data.Name == nil && data.Public == nil {
		apperr.Abort(c, apperr.New(apperr.Validation))
		return
	}

	if data.Name != nil && *data.Name == "" {
		apperr.Abort(c, apperr.New(apperr.Validation))
		return
	}

	d.Locks.Lock(fileID)
	defer d.Locks.Unlock(fileID)

	ent, err := d.Registry.Get(c.Request.Context(), fileID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	if err := access.Resolve(middleware.Principal(c), ent, access.Write); err != nil {
		apperr.Abort(c, err)
		return
	}

	if data.Name != nil {
		name := path.Base(*data.Name)
		if ext := path.Ext(name); strings.TrimPrefix(strings.ToLower(ext), ".") == ent.Ext {
			name = strings.TrimSuffix(name, ext)
		}

		ent.Name = name
	}

	if data.Public != nil {
		ent.Public = *data.Public
	}

	if err := d.Registry.Update(c.Request.Context(), ent); err != nil {
		apperr.Abort(c, err)

		zap.L().Error("Failed to update file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, ent)
}
