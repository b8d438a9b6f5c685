package utils

import (
	"testing"
	"time"

	"commit/models"

	"github.com/golang-jwt/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jwtAccount = models.Account{ID: "u1", Email: "mario@example.com", UserType: models.UserTypeCustomer}

func TestNewTokenManager_RejectsEmptySecret(t *testing.T) {
	_, err := NewTokenManager("", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestTokenKindsAreNotInterchangeable(t *testing.T) {
	m, err := NewTokenManager("secret", 30*time.Minute, 720*time.Hour)
	require.NoError(t, err)

	pair, err := m.GeneratePair(jwtAccount)
	require.NoError(t, err)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, 1800, pair.ExpiresIn)

	claims, err := m.ParseToken(pair.AccessToken, AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.Subject)
	assert.Equal(t, models.UserTypeCustomer, claims.UserType)

	_, err = m.ParseToken(pair.AccessToken, RefreshToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)
	_, err = m.ParseToken(pair.RefreshToken, AccessToken)
	assert.ErrorIs(t, err, ErrWrongTokenType)

	claims, err = m.ParseToken(pair.RefreshToken, RefreshToken)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(720*time.Hour), claims.ExpiresAt, time.Minute)
}

func TestParseToken_RejectsExpiredAndForeignTokens(t *testing.T) {
	m, err := NewTokenManager("secret", time.Minute, time.Hour)
	require.NoError(t, err)

	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, err := m.GenerateToken(jwtAccount, AccessToken)
	require.NoError(t, err)
	_, err = m.ParseToken(stale, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewTokenManager("another-secret", time.Minute, time.Hour)
	require.NoError(t, err)
	forged, err := other.GenerateToken(jwtAccount, AccessToken)
	require.NoError(t, err)
	_, err = m.ParseToken(forged, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "u1", "type": "access"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = m.ParseToken(unsigned, AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHashToken(t *testing.T) {
	assert.Len(t, HashToken("abc"), 64)
	assert.Equal(t, HashToken("abc"), HashToken("abc"))
	assert.NotEqual(t, HashToken("abc"), HashToken("abd"))
}
