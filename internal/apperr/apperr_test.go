package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind   Kind
		status int
	}{
		{Validation, http.StatusBadRequest},
		{TokenExpired, http.StatusUnauthorized},
		{TokenInvalid, http.StatusUnauthorized},
		{SessionNotFound, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{FileIsPrivate, http.StatusForbidden},
		{UnverifiedAdmin, http.StatusForbidden},
		{UserNotFound, http.StatusNotFound},
		{FileNotFound, http.StatusNotFound},
		{StorageLimit, http.StatusConflict},
		{EmailExists, http.StatusConflict},
		{StatusAlreadyAssigned, http.StatusConflict},
		{FileExtNotSupport, http.StatusUnsupportedMediaType},
		{RateLimit, http.StatusTooManyRequests},
		{Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		require.Equal(t, tt.status, tt.kind.Status(), tt.kind.Message())
		require.NotEmpty(t, tt.kind.Message())
	}
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	t.Parallel()

	err := Wrap(FileNotFound, errors.New("no such file or directory"))

	require.ErrorIs(t, err, New(FileNotFound))
	require.NotErrorIs(t, err, New(Forbidden))
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("disk on fire")
	err := Wrap(Internal, cause)

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "disk on fire")
}

func TestWrappedThroughFmtStillClassifies(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("loading blob: %w", New(FileNotFound))

	require.Equal(t, FileNotFound, KindOf(err))
	require.ErrorIs(t, err, New(FileNotFound))
}

func TestKindOfUnclassified(t *testing.T) {
	t.Parallel()

	require.Equal(t, Internal, KindOf(errors.New("anything")))
}

func TestPublicMessageLeaksNoDetail(t *testing.T) {
	t.Parallel()

	err := Wrap(Internal, errors.New("password=hunter2"))

	// The transport message comes from the Kind, never from the cause
	require.NotContains(t, err.Kind.Message(), "hunter2")
}
