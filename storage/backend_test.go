package storage

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func testFile(id string) *model.File {
	return &model.File{
		ID:   id,
		Name: "selfie",
		Ext:  "jpeg",
		Mime: "image/jpeg",
	}
}

// Both backends have to satisfy the same contract, so every case runs
// against each of them.
func backends(t *testing.T) map[string]Backend {
	return map[string]Backend{
		"local":  NewLocal(t.TempDir()),
		"memory": NewMemory(),
	}
}

func TestBackendRoundTrip(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.Init(ctx))

			f := testFile("round-trip")
			data := []byte{0xde, 0xad, 0xbe, 0xef, 0x00, 0x01}

			require.NoError(t, b.SaveFile(ctx, f, data))

			got, err := b.LoadFile(ctx, f)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestBackendSaveRejectsNilData(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.Init(ctx))

			err := b.SaveFile(ctx, testFile("nil-data"), nil)
			require.ErrorIs(t, err, apperr.New(apperr.Validation))
		})
	}
}

func TestBackendSaveRewritesExistingKey(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.Init(ctx))

			f := testFile("rewrite")
			require.NoError(t, b.SaveFile(ctx, f, []byte("first")))
			require.NoError(t, b.SaveFile(ctx, f, []byte("second")))

			got, err := b.LoadFile(ctx, f)
			require.NoError(t, err)
			require.Equal(t, []byte("second"), got)
		})
	}
}

func TestBackendLoadMissing(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.Init(ctx))

			_, err := b.LoadFile(ctx, testFile("never-saved"))
			require.ErrorIs(t, err, apperr.New(apperr.FileNotFound))
		})
	}
}

func TestBackendDeleteVisibility(t *testing.T) {
	t.Parallel()

	for name, b := range backends(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.Init(ctx))

			f := testFile("delete-me")
			require.NoError(t, b.SaveFile(ctx, f, []byte("bytes")))
			require.NoError(t, b.DeleteFile(ctx, f))

			_, err := b.LoadFile(ctx, f)
			require.ErrorIs(t, err, apperr.New(apperr.FileNotFound))

			// Absence is reported, not swallowed
			err = b.DeleteFile(ctx, f)
			require.ErrorIs(t, err, apperr.New(apperr.FileNotFound))
		})
	}
}

func TestLocalInitIdempotent(t *testing.T) {
	t.Parallel()

	b := NewLocal(t.TempDir())
	ctx := context.Background()

	require.NoError(t, b.Init(ctx))
	require.NoError(t, b.Init(ctx))

	f := testFile("after-reinit")
	require.NoError(t, b.SaveFile(ctx, f, []byte("x")))
	require.NoError(t, b.Init(ctx))

	got, err := b.LoadFile(ctx, f)
	require.NoError(t, err)
	require.Equal(t, []byte("x"), got)
}
