// Package auth issues and verifies session tokens and handles the secrets
// derived from user input: password hashes, verification codes and
// temporary passwords.
package auth

import (
	"errors"
	"time"

	"github.com/DavidCuartasC/LogisticsManagementSystem/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingSecret is returned when no signing key is configured.
var ErrMissingSecret = errors.New("jwt secret is empty")

// Claims identify the session's user; the id is serialized as "id".
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenIssuer signs HS256 session tokens with a key loaded at startup.
type TokenIssuer struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenIssuer(secret string, validity time.Duration) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	return &TokenIssuer{secret: []byte(secret), validity: validity, now: time.Now}, nil
}

// Issue returns a token for userID that expires after the configured validity.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.validity)),
		},
		UserID: userID,
	})

	return token.SignedString(t.secret)
}

// Verify checks signature and expiry and returns the user id. Expired tokens
// yield common.ErrTokenExpired, anything else common.ErrInvalidToken.
func (t *TokenIssuer) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == "" {
		return "", common.ErrInvalidToken
	}

	return claims.UserID, nil
}
