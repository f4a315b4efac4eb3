package file

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/access"
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/pkg/middleware"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FileDelete removes a file's blob and then its record. A blob that's
// already gone doesn't keep the record alive.
func FileDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	fileID := c.Param("id")
	if fileID == "" {
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

	err = d.Storage.DeleteFile(c.Request.Context(), ent)
	if err != nil {
		if !errors.Is(err, apperr.New(apperr.FileNotFound)) {
			apperr.Abort(c, err)

			zap.L().Error("Failed to delete blob", zap.String("requestID", requestID), zap.Error(err))
			return
		}

		zap.L().Warn("Blob already missing on delete",
			zap.String("requestID", requestID),
			zap.String("file_id", ent.ID),
		)
	}

	if err := d.Registry.Delete(c.Request.Context(), ent.ID); err != nil {
		apperr.Abort(c, err)

		zap.L().Error("Failed to delete record after blob", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	c.Status(http.StatusOK)
}
