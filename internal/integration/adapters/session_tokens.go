// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gestor-gastos/backend/internal/application/adapter"
	domainerror "github.com/gestor-gastos/backend/internal/domain/error"
)

// DefaultSessionDuration is the token lifetime used when none is configured.
const DefaultSessionDuration = 30 * 24 * time.Hour

// sessionTokens implements the adapter.SessionTokens interface with HS256
// JWTs whose subject is the user key.
type sessionTokens struct {
	secret   []byte
	duration time.Duration
}

// NewSessionTokens creates a new session token service instance.
func NewSessionTokens(secret string, duration time.Duration) adapter.SessionTokens {
	if duration == 0 {
		duration = DefaultSessionDuration
	}
	return &sessionTokens{
		secret:   []byte(secret),
		duration: duration,
	}
}

// Issue creates a signed session token for the user key.
func (s *sessionTokens) Issue(_ context.Context, userKey string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   userKey,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.duration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the user key.
func (s *sessionTokens) Verify(_ context.Context, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domainerror.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domainerror.ErrInvalidToken
	}
	return claims.Subject, nil
}
