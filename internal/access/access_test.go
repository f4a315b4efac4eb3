package access

import (
	"bitwise74/file-api/internal/apperr"
	"bitwise74/file-api/internal/model"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Parallel()

	owner := Principal{UserID: "u1"}
	stranger := Principal{UserID: "u2"}
	admin := Principal{UserID: "u3", IsAdmin: true}

	private := &model.File{ID: "f1", OwnerID: "u1"}
	public := &model.File{ID: "f2", OwnerID: "u1", Public: true}

	tests := []struct {
		name      string
		principal Principal
		file      *model.File
		action    Action
		wantKind  apperr.Kind
		wantAllow bool
	}{
		{"owner reads private", owner, private, Read, 0, true},
		{"owner writes private", owner, private, Write, 0, true},
		{"admin reads private", admin, private, Read, 0, true},
		{"admin writes private", admin, private, Write, 0, true},
		{"stranger reads private", stranger, private, Read, apperr.FileIsPrivate, false},
		{"stranger writes private", stranger, private, Write, apperr.Forbidden, false},
		{"anonymous reads private", Anonymous, private, Read, apperr.FileIsPrivate, false},

		// Visibility widens reads for everyone, never writes
		{"stranger reads public", stranger, public, Read, 0, true},
		{"anonymous reads public", Anonymous, public, Read, 0, true},
		{"stranger writes public", stranger, public, Write, apperr.Forbidden, false},
		{"anonymous writes public", Anonymous, public, Write, apperr.Forbidden, false},
		{"owner writes public", owner, public, Write, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Resolve(tt.principal, tt.file, tt.action)

			if tt.wantAllow {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			require.ErrorIs(t, err, apperr.New(tt.wantKind))
		})
	}
}

func TestResolveEmptyUserNeverMatchesEmptyOwner(t *testing.T) {
	t.Parallel()

	// A record with a blank owner must not become writable for
	// anonymous callers
	f := &model.File{ID: "f3", OwnerID: ""}

	err := Resolve(Anonymous, f, Write)
	require.Error(t, err)

	var e *apperr.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, apperr.Forbidden, e.Kind)
}
