package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword_HashAndCheck(t *testing.T) {
	hash, err := HashPassword("secret-password")
	require.NoError(t, err)
	assert.NotEqual(t, "secret-password", hash)

	assert.NoError(t, CheckPassword(hash, "secret-password"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrPasswordMismatch)
	assert.ErrorIs(t, CheckPassword("", "anything"), ErrPasswordMismatch)
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)

	tok, err := ti.Sign("abc-123")
	require.NoError(t, err)

	sid, err := ti.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "abc-123", sid)
}

func TestTokenIssuer_RejectsTamperedAndExpired(t *testing.T) {
	ti := NewTokenIssuer("test-secret", time.Hour)
	other := NewTokenIssuer("other-secret", time.Hour)

	tok, err := other.Sign("abc")
	require.NoError(t, err)
	_, err = ti.Parse(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken))

	_, err = ti.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	past := time.Now().Add(-2 * time.Hour)
	expired := NewTokenIssuer("test-secret", time.Hour)
	expired.now = func() time.Time { return past }
	tok, err = expired.Sign("abc")
	require.NoError(t, err)
	_, err = ti.Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
