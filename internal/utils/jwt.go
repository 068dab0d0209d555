package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Subject   (sub): the user's email
//   - IssuedAt  (iat): now
//   - ExpiresAt (exp): now plus tokenDuration
//
// All parameters are required. Returns an error if any of them are empty or
// zero. The method must be an HMAC method since signKey is a shared secret.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("alice@example.com", 30*time.Minute, "secret", jwt.SigningMethodHS256, time.Now())
func GenerateJWTToken(subject string, tokenDuration time.Duration, signKey string, method jwt.SigningMethod, now time.Time) (models.Token, error) {
	if subject == "" || tokenDuration == 0 || signKey == "" || method == nil {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(method, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during singing JWT token: %w", err)
	}

	return models.Token{Token: token, RegisteredClaims: claims, SignedString: tokenString}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Algorithm check: only method is accepted ("none" and algorithm
//     substitution are rejected)
//   - Signature verification using the provided sign key
//   - Expiration (exp) claim presence and check against now; a token is
//     expired at or past its exp instant
//   - Subject (sub) claim presence
//
// The returned error wraps the jwt/v5 sentinel that caused the failure, so
// callers can tell jwt.ErrTokenExpired apart from every other failure.
func ValidateAndParseJWTToken(tokenString, signKey string, method jwt.SigningMethod, now time.Time) (models.Token, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	if claims.Subject == "" {
		return models.Token{}, fmt.Errorf("%w: empty subject", jwt.ErrTokenInvalidClaims)
	}

	return models.Token{Token: token, RegisteredClaims: *claims, SignedString: tokenString}, nil
}

// ParseBearerToken extracts the credentials from an Authorization header of
// the form "Bearer <token>". The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", errors.New("invalid authorization header")
	}

	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", errors.New("invalid authorization header")
	}
	return token, nil
}
