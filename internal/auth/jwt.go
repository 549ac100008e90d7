package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrInvalidToken covers a bad signature, a malformed token and an
	// expired token alike.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMalformedSubject means the signature checked out but the
	// subject claim is not a user identifier.
	ErrMalformedSubject = errors.New("invalid user id in token")
)

// IssueToken mints an HS256 token for userID with an absolute expiry
// of now+ttl. There is no refresh or revocation: once issued, a token
// stays valid for its full lifetime.
func IssueToken(secret []byte, userID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// VerifyToken checks signature and expiry and returns the embedded
// user identifier.
func VerifyToken(raw string, secret []byte) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", ErrMalformedSubject
	}
	return claims.Subject, nil
}
