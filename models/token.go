package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "bearer"

// Token wraps a JWT token with convenience accessors for authentication flows.
//
// It embeds [jwt.RegisteredClaims] so it can be passed directly to
// [jwt.ParseWithClaims]. The subject claim carries the user's email.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides access to the standard JWT claim set
	// (sub, exp, iat) as defined by RFC 7519.
	jwt.RegisteredClaims

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// Email returns the subject claim of the token.
func (t *Token) Email() string {
	return t.Subject
}

// ExpiresAtTime returns the expiry instant or the zero time when the claim
// is absent.
func (t *Token) ExpiresAtTime() time.Time {
	if t.ExpiresAt == nil {
		return time.Time{}
	}
	return t.ExpiresAt.Time
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}

// AccessToken is the JSON body returned by the token endpoints.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NewAccessToken builds the response body for a signed token.
func NewAccessToken(token Token) AccessToken {
	return AccessToken{
		AccessToken: token.SignedString,
		TokenType:   TokenTypeBearer,
	}
}
