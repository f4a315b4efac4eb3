// Package auth exposes the token endpoints. Token types are a path-level
// selector into the registered secret set; unknown types fail closed.
package auth

import (
	"bitwise74/file-api/internal"
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/token"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type tokenGeneratePayload struct {
	UserID string `json:"user_id" binding:"required"`
	FileID string `json:"file_id,omitempty"`
}

// TokenGenerate issues a new token of the requested type
func TokenGenerate(c *gin.Context, d *internal.Deps) {
	var payload tokenGeneratePayload
	if err := c.BindJSON(&payload); err != nil {
		apperr.Abort(c, apperr.Wrap(apperr.Validation, err))
		return
	}

	signed, err := d.Tokens.Issue(token.Type(c.Param("tokenType")), payload.UserID, payload.FileID)
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token": signed,
	})
}

// TokenInfo decodes the bearer token against the requested type's secret
// and returns its claim set
func TokenInfo(c *gin.Context, d *internal.Deps) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		apperr.Abort(c, apperr.New(apperr.TokenInvalid))
		return
	}

	claims, err := d.Tokens.Decode(strings.TrimPrefix(h, "Bearer "), token.Type(c.Param("tokenType")))
	if err != nil {
		apperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, claims)
}

// TokenValidate only confirms liveness. The auth middleware already
// rejected anything invalid before this runs.
func TokenValidate(c *gin.Context, d *internal.Deps) {
	if err := d.Tokens.Validate(token.Type(c.Param("tokenType"))); err != nil {
		apperr.Abort(c, err)
		return
	}

	c.Status(http.StatusOK)
}
