package token

import (
	"bitwise74/file-api/internal/apperr"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()

	s, err := NewService(map[Type][]byte{
		TypeUser:  []byte("user-secret"),
		TypeAdmin: []byte("admin-secret"),
		TypeFile:  []byte("file-secret"),
	}, ttl)
	require.NoError(t, err)

	return s
}

func TestNewServiceRejectsBadInput(t *testing.T) {
	t.Parallel()

	_, err := NewService(nil, time.Hour)
	require.Error(t, err)

	_, err = NewService(map[Type][]byte{TypeUser: nil}, time.Hour)
	require.Error(t, err)

	_, err = NewService(map[Type][]byte{TypeUser: []byte("s")}, 0)
	require.Error(t, err)
}

func TestTokenRoundTrip(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour)

	raw, err := s.Issue(TypeUser, "u1", "")
	require.NoError(t, err)

	claims, err := s.Decode(raw, TypeUser)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Empty(t, claims.FileID)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
}

func TestTokenCarriesFileScope(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour)

	raw, err := s.Issue(TypeFile, "u1", "f1")
	require.NoError(t, err)

	claims, err := s.Decode(raw, TypeFile)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "f1", claims.FileID)
}

func TestTokenCrossTypeFailsClosed(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour)

	raw, err := s.Issue(TypeUser, "u1", "")
	require.NoError(t, err)

	// Each type has its own secret, so a user token never verifies as
	// an admin token
	_, err = s.Decode(raw, TypeAdmin)
	require.ErrorIs(t, err, apperr.New(apperr.TokenInvalid))
}

func TestTokenUnregisteredType(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour)

	_, err := s.Issue(Type("guest"), "u1", "")
	require.ErrorIs(t, err, apperr.New(apperr.TokenInvalid))

	raw, err := s.Issue(TypeUser, "u1", "")
	require.NoError(t, err)

	_, err = s.Decode(raw, Type("guest"))
	require.ErrorIs(t, err, apperr.New(apperr.TokenInvalid))
}

func TestTokenIssueRequiresUserID(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour)

	_, err := s.Issue(TypeUser, "", "")
	require.ErrorIs(t, err, apperr.New(apperr.Validation))
}

func TestTokenMalformed(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour)

	for _, raw := range []string{"", "not.a.jwt", "garbage"} {
		_, err := s.Decode(raw, TypeUser)
		require.ErrorIs(t, err, apperr.New(apperr.TokenInvalid))
	}
}

func TestTokenExpiry(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Millisecond)

	raw, err := s.Issue(TypeUser, "u1", "")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = s.Decode(raw, TypeUser)
	require.ErrorIs(t, err, apperr.New(apperr.TokenExpired))
}

func TestValidateIsTrivial(t *testing.T) {
	t.Parallel()

	s := newTestService(t, time.Hour)
	require.NoError(t, s.Validate(TypeUser))
	require.NoError(t, s.Validate(Type("anything")))
}
