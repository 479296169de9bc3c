package auth

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, exp, err := tm.GenerateToken("user-1", "alice", true)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID)
	assert.Equal(t, "alice", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestVerifyNonAdmin(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken("user-2", "bob", false)
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestVerifyMissing(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	claims, err := tm.Verify("")
	assert.ErrorIs(t, err, ErrTokenMissing)
	assert.Nil(t, claims)
}

func TestVerifyTampered(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, _, err := tm.GenerateToken("user-1", "alice", false)
	require.NoError(t, err)

	claims, err := tm.Verify(token + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Nil(t, claims)
}

func TestVerifyWrongSecret(t *testing.T) {
	other := NewTokenManager("other-secret", 60)
	token, _, err := other.GenerateToken("user-1", "alice", true)
	require.NoError(t, err)

	tm := NewTokenManager("test-secret", 60)
	claims, err := tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
	assert.Nil(t, claims)
}

func TestVerifyExpired(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	expired := &Claims{
		SubjectID: "user-1",
		Username:  "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expired).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	claims, err := tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestVerifyRejectsUnexpectedMethod(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	// alg=none tokens must never be accepted.
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{SubjectID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
