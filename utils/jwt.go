package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"commit/models"

	"github.com/golang-jwt/jwt"
)

// TokenKind distinguishes short-lived access tokens from refresh tokens.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrWrongTokenType = errors.New("invalid token type")
)

// TokenClaims is the decoded payload of a token issued by TokenManager.
type TokenClaims struct {
	Subject   string
	Email     string
	UserType  models.UserType
	Kind      TokenKind
	ExpiresAt time.Time
}

// TokenManager signs and verifies HS256 tokens.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

// NewTokenManager builds a TokenManager. An empty secret is rejected.
func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}, nil
}

// AccessTTL is the lifetime of access tokens.
func (m *TokenManager) AccessTTL() time.Duration { return m.accessTTL }

// GenerateToken creates a signed token of the given kind for an account.
func (m *TokenManager) GenerateToken(acc models.Account, kind TokenKind) (string, error) {
	ttl := m.accessTTL
	if kind == RefreshToken {
		ttl = m.refreshTTL
	}
	now := m.now()
	claims := jwt.MapClaims{
		"sub":       acc.ID,
		"email":     acc.Email,
		"user_type": string(acc.UserType),
		"type":      string(kind),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// GeneratePair creates an access + refresh token pair.
func (m *TokenManager) GeneratePair(acc models.Account) (*models.TokenPair, error) {
	access, err := m.GenerateToken(acc, AccessToken)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}
	refresh, err := m.GenerateToken(acc, RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("sign refresh token: %w", err)
	}
	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		ExpiresIn:    int(m.accessTTL.Seconds()),
	}, nil
}

// ParseToken validates the signature, expiry and kind of tokenString.
func (m *TokenManager) ParseToken(tokenString string, want TokenKind) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	kind, _ := claims["type"].(string)
	if TokenKind(kind) != want {
		return nil, ErrWrongTokenType
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	userType, _ := claims["user_type"].(string)

	var exp time.Time
	if v, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(v), 0)
	}
	return &TokenClaims{
		Subject:   sub,
		Email:     email,
		UserType:  models.UserType(userType),
		Kind:      TokenKind(kind),
		ExpiresAt: exp,
	}, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
