package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", 0, 0)
	claims := Claims{UserID: "u-1", ChurchID: "c-1", GroupID: "g-1", Status: "churchAdmin"}

	access, err := m.GenerateAccessToken(claims)
	require.NoError(t, err)

	parsed, err := m.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "u-1", parsed.UserID)
	assert.Equal(t, "c-1", parsed.ChurchID)
	assert.Equal(t, "g-1", parsed.GroupID)
	assert.Equal(t, "churchAdmin", parsed.Status)
	assert.Equal(t, "u-1", parsed.Subject)
	assert.Equal(t, DefaultRefreshTokenTTL, m.RefreshTTL())
}

func TestTokenManager_SecretsAreNotInterchangeable(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)

	refresh, err := m.GenerateRefreshToken(Claims{UserID: "u-1"})
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	token, err := m.GenerateAccessToken(Claims{UserID: "u-1"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
