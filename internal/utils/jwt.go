package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kispace/kispace-server/models"
)

// Sentinel errors returned by [ValidateAndParseJWTToken]. Callers should
// match against them with [errors.Is].
var (
	// ErrTokenInvalid is returned for malformed, unsigned, or tampered tokens.
	ErrTokenInvalid = errors.New("token is invalid")

	// ErrTokenExpired is returned for a correctly signed token whose "exp"
	// claim lies in the past.
	ErrTokenExpired = errors.New("token is expired")

	// ErrTokenMissingSubject is returned when a valid token carries no "sub"
	// claim.
	ErrTokenMissingSubject = errors.New("token has no subject")
)

// GenerateJWTToken creates a signed HMAC-SHA256 JWT token for the given subject.
//
// The token includes the following standard claims:
//   - Subject   (sub): the username the token is issued for
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): the current time plus ttl
//
// Access and refresh tokens are produced by the same function with different
// ttl values; they are structurally identical and nothing in the claim set
// marks which kind a token is.
//
// Returns an error if any of the parameters are empty or zero, or if
// signing fails.
func GenerateJWTToken(subject string, ttl time.Duration, signKey string) (models.Token, error) {
	if subject == "" || ttl == 0 || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{Token: token, SignedString: tokenString, Username: subject}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its subject.
//
// Validation includes signature verification using the provided sign key and
// the standard expiration check. No distinction is made between access and
// refresh tokens: either kind authenticates equally when presented as a
// bearer credential. This mirrors the behavior of the original system and is
// documented as an open design question rather than silently changed.
//
// Returns:
//   - [ErrTokenExpired] for a valid-but-expired token
//   - [ErrTokenInvalid] for malformed, unsigned, or tampered tokens
//   - [ErrTokenMissingSubject] when the "sub" claim is absent or empty
func ValidateAndParseJWTToken(tokenString, signKey string) (models.Token, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Token{}, fmt.Errorf("%w: %w", ErrTokenExpired, err)
		}
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return models.Token{}, ErrTokenMissingSubject
	}

	return models.Token{Token: token, SignedString: tokenString, Username: subject}, nil
}
