package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a settable Clock for tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestTokenService(t *testing.T, clock *fakeClock) TokenService {
	t.Helper()
	svc, err := NewTokenService(config.App{
		TokenSignKey:          "test-secret",
		TokenSigningAlgorithm: "HS256",
		TokenDuration:         30 * time.Minute,
	}, clock.Now, logger.Nop())
	require.NoError(t, err)
	return svc
}

// ── NewTokenService ──────────────────────────────────────────────────────────

func TestNewTokenService_UnsupportedAlgorithm(t *testing.T) {
	for _, alg := range []string{"RS256", "none", "", "ES256"} {
		t.Run(alg, func(t *testing.T) {
			svc, err := NewTokenService(config.App{TokenSignKey: "k", TokenSigningAlgorithm: alg}, nil, logger.Nop())
			assert.Nil(t, svc)
			assert.ErrorIs(t, err, ErrUnsupportedSigningMethod)
		})
	}
}

func TestNewTokenService_NilClockUsesWallTime(t *testing.T) {
	svc, err := NewTokenService(config.App{
		TokenSignKey:          "k",
		TokenSigningAlgorithm: "HS512",
		TokenDuration:         time.Minute,
	}, nil, logger.Nop())
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	token, err := svc.IssueToken(context.Background(), "a@example.com", 0)
	require.NoError(t, err)

	assert.True(t, token.IssuedAt.Time.After(before))
	assert.Equal(t, "HS512", token.Method.Alg())
}

// ── IssueToken ───────────────────────────────────────────────────────────────

func TestTokenService_IssueToken_DefaultTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)

	token, err := svc.IssueToken(context.Background(), "alice@example.com", 0)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", token.Email())
	assert.Equal(t, clock.now, token.IssuedAt.Time)
	assert.Equal(t, clock.now.Add(30*time.Minute), token.ExpiresAtTime())
	assert.Len(t, strings.Split(token.String(), "."), 3)
}

func TestTokenService_IssueToken_ExplicitTTL(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)

	token, err := svc.IssueToken(context.Background(), "alice@example.com", 5*time.Minute)
	require.NoError(t, err)

	assert.Equal(t, clock.now.Add(5*time.Minute), token.ExpiresAtTime())
}

func TestTokenService_IssueToken_EmptySubject(t *testing.T) {
	svc := newTestTokenService(t, &fakeClock{now: time.Now()})

	_, err := svc.IssueToken(context.Background(), "", 0)
	assert.ErrorIs(t, err, ErrTokenCreationFailed)
}

// ── ValidateToken ────────────────────────────────────────────────────────────

func TestTokenService_ValidateToken_RoundTrip(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "bob@example.com", 0)
	require.NoError(t, err)

	clock.Advance(29 * time.Minute)
	subject, err := svc.ValidateToken(ctx, token.String())
	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", subject)
}

func TestTokenService_ValidateToken_ExpiredAtExactInstant(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "bob@example.com", 0)
	require.NoError(t, err)

	clock.Advance(30 * time.Minute)
	_, err = svc.ValidateToken(ctx, token.String())
	assert.ErrorIs(t, err, ErrTokenExpired)

	clock.Advance(time.Hour)
	_, err = svc.ValidateToken(ctx, token.String())
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_ValidateToken_Malformed(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)
	ctx := context.Background()

	token, err := svc.IssueToken(ctx, "bob@example.com", 0)
	require.NoError(t, err)

	otherKey, err := NewTokenService(config.App{
		TokenSignKey:          "another-secret",
		TokenSigningAlgorithm: "HS256",
		TokenDuration:         time.Minute,
	}, clock.Now, logger.Nop())
	require.NoError(t, err)
	foreign, err := otherKey.IssueToken(ctx, "bob@example.com", 0)
	require.NoError(t, err)

	otherAlg, err := NewTokenService(config.App{
		TokenSignKey:          "test-secret",
		TokenSigningAlgorithm: "HS384",
		TokenDuration:         time.Minute,
	}, clock.Now, logger.Nop())
	require.NoError(t, err)
	wrongAlg, err := otherAlg.IssueToken(ctx, "bob@example.com", 0)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "bob@example.com"}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	noSub, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "bob@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := map[string]string{
		"empty":             "",
		"garbage":           "not-a-token",
		"two segments":      "abc.def",
		"foreign key":       foreign.String(),
		"wrong algorithm":   wrongAlg.String(),
		"missing exp":       noExp,
		"missing sub":       noSub,
		"none algorithm":    unsigned,
		"spliced signature": splice(token.String(), foreign.String()),
		"trailing segments": token.String() + ".extra",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, raw)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		})
	}
}

// splice joins the header and payload of a with the signature of b.
func splice(a, b string) string {
	pa := strings.Split(a, ".")
	pb := strings.Split(b, ".")
	return pa[0] + "." + pa[1] + "." + pb[2]
}

// An expired token that was also tampered with must be reported as
// malformed: the signature is checked before the claims.
func TestTokenService_ValidateToken_SignatureBeforeExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := newTestTokenService(t, clock)
	ctx := context.Background()

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "bob@example.com",
		ExpiresAt: jwt.NewNumericDate(clock.now.Add(-time.Hour)),
	}).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateToken(ctx, expired)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}
