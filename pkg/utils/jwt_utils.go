package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	DefaultAccessTokenTTL  = 10 * time.Minute
	DefaultRefreshTokenTTL = 12 * time.Hour
)

var ErrInvalidToken = errors.New("invalid token")

// Claims defines the JWT claims structure. IDs travel as UUID strings.
type Claims struct {
	UserID   string `json:"id"`
	ChurchID string `json:"churchId"`
	GroupID  string `json:"groupId"`
	Status   string `json:"status"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies access and refresh tokens with separate secrets.
type TokenManager struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

// NewTokenManager creates a TokenManager. Zero TTLs fall back to the defaults.
func NewTokenManager(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}
	return &TokenManager{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
		now:           time.Now,
	}
}

// RefreshTTL is the lifetime of refresh tokens, used for the cookie max age.
func (m *TokenManager) RefreshTTL() time.Duration {
	return m.refreshTTL
}

// GenerateAccessToken creates a short lived token carrying the caller identity.
func (m *TokenManager) GenerateAccessToken(claims Claims) (string, error) {
	return m.sign(claims, m.accessSecret, m.accessTTL, "church-backend")
}

// GenerateRefreshToken creates a long lived token carrying the same identity.
func (m *TokenManager) GenerateRefreshToken(claims Claims) (string, error) {
	return m.sign(claims, m.refreshSecret, m.refreshTTL, "church-backend-refresh")
}

// ValidateAccessToken parses and validates an access token.
func (m *TokenManager) ValidateAccessToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, m.accessSecret)
}

// ValidateRefreshToken parses and validates a refresh token.
func (m *TokenManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, m.refreshSecret)
}

func (m *TokenManager) sign(claims Claims, secret []byte, ttl time.Duration, issuer string) (string, error) {
	now := m.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.UserID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		Issuer:    issuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	tokenString, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (m *TokenManager) validate(tokenString string, secret []byte) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
