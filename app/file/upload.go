package file

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"bitwise74/file-api/pkg/validators"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func FileUpload(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	fh, err := c.FormFile("file")
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation, err))
		return
	}

	f, err := fh.Open()
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Internal, err))

		zap.L().Error("Failed to open multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Internal, err))

		zap.L().Error("Failed to read multipart file", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	mime, err := validators.FileValidator(c.Request.Context(), fh, data, d.Registry, userID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	public, _ := strconv.ParseBool(c.PostForm("public"))

	base := path.Base(fh.Filename)
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(base)), ".")
	hash := sha256.Sum256(data)

	ent := &model.File{
		ID:        uuid.NewString(),
		Name:      strings.TrimSuffix(base, path.Ext(base)),
		Ext:       ext,
		Mime:      mime,
		Size:      int64(len(data)),
		Hash:      hex.EncodeToString(hash[:]),
		OwnerID:   userID,
		Public:    public,
		CreatedAt: time.Now().UnixMilli(),
	}

	// The blob commits before the record. A record pointing at a missing
	// blob breaks reads silently, while a blob with no record is just an
	// orphan the flush job reclaims.
	if err := d.Storage.SaveFile(c.Request.Context(), ent, data); err != nil {
		apperr.Abort(c, err)

		zap.L().Error("Failed to save blob", zap.String("requestID", requestID), zap.Error(err))
		return
	}

	if err := d.Registry.Create(c.Request.Context(), ent); err != nil {
		apperr.Abort(c, err)

		zap.L().Warn("Record creation failed after blob write, leaving orphan for the flush job",
			zap.String("requestID", requestID),
			zap.String("file_id", ent.ID),
			zap.Error(err),
		)
		return
	}

	c.JSON(http.StatusCreated, ent)
}
