// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"testing"

	"github.com/MKhiriev/go-user-accounts/internal/metrics"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var formHeaders = map[string]string{"Content-Type": "application/x-www-form-urlencoded"}

func loginForm(username, password string) string {
	return url.Values{"username": {username}, "password": {password}}.Encode()
}

func stubToken(signed string) models.Token {
	return models.Token{SignedString: signed}
}

// ─────────────────────────────────────────────
// POST /token
// ─────────────────────────────────────────────

func TestLogin_Success(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(_ context.Context, email, password string) (models.Token, error) {
			assert.Equal(t, "alice@example.com", email)
			assert.Equal(t, "Secret1!x", password)
			return stubToken("signed.jwt.value"), nil
		},
	}
	m := metrics.NewMetrics(prometheus.NewRegistry())

	rr := serve(newTestRouter(t, auth, nil, m), http.MethodPost, "/token", loginForm("alice@example.com", "Secret1!x"), formHeaders)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rr.Header().Get("Cache-Control"))

	var body models.AccessToken
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "signed.jwt.value", body.AccessToken)
	assert.Equal(t, "bearer", body.TokenType)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(metrics.LoginSucceeded)))
}

func TestLogin_Failures(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		loginErr    error
		wantStatus  int
		wantDetail  string
		wantOutcome string
	}{
		{
			name:        "wrong password",
			body:        loginForm("alice@example.com", "wrong"),
			loginErr:    service.ErrInvalidCredentials,
			wantStatus:  http.StatusUnauthorized,
			wantDetail:  "Incorrect username or password",
			wantOutcome: metrics.LoginInvalidCredentials,
		},
		{
			name:        "storage failure",
			body:        loginForm("alice@example.com", "pw"),
			loginErr:    errors.New("db down"),
			wantStatus:  http.StatusInternalServerError,
			wantDetail:  "Internal Server Error",
			wantOutcome: metrics.LoginFailed,
		},
		{
			name:       "missing password",
			body:       url.Values{"username": {"alice@example.com"}}.Encode(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing username",
			body:       url.Values{"password": {"pw"}}.Encode(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty body",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			auth := &mockAuthService{
				loginFn: func(context.Context, string, string) (models.Token, error) {
					called = true
					return models.Token{}, tt.loginErr
				},
			}
			m := metrics.NewMetrics(prometheus.NewRegistry())

			rr := serve(newTestRouter(t, auth, nil, m), http.MethodPost, "/token", tt.body, formHeaders)

			assert.Equal(t, tt.wantStatus, rr.Code)
			detail := decodeDetail(t, rr)
			if tt.wantDetail != "" {
				assert.Equal(t, tt.wantDetail, detail)
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
			}

			if tt.wantOutcome == "" {
				assert.False(t, called, "invalid forms must not reach AuthService")
				assert.Zero(t, testutil.CollectAndCount(m.LoginAttemptsTotal))
				return
			}
			assert.Equal(t, 1.0, testutil.ToFloat64(m.LoginAttemptsTotal.WithLabelValues(tt.wantOutcome)))
		})
	}
}

// Unknown emails and wrong passwords are reported identically.
func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	auth := &mockAuthService{
		loginFn: func(context.Context, string, string) (models.Token, error) {
			return models.Token{}, service.ErrInvalidCredentials
		},
	}
	router := newTestRouter(t, auth, nil, nil)

	unknown := serve(router, http.MethodPost, "/token", loginForm("ghost@example.com", "x"), formHeaders)
	wrong := serve(router, http.MethodPost, "/token", loginForm("alice@example.com", "x"), formHeaders)

	assert.Equal(t, wrong.Code, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())
}

// ─────────────────────────────────────────────
// GET /users/me, POST /token/refresh
// ─────────────────────────────────────────────

func authorizedAs(user models.User) *mockAuthService {
	return &mockAuthService{
		authorizeFn: func(_ context.Context, token string) (models.User, error) {
			if token != "good-token" {
				return models.User{}, service.ErrTokenMalformed
			}
			return user, nil
		},
	}
}

var bearer = map[string]string{"Authorization": "Bearer good-token"}

func TestMe_ReturnsFullUserWithoutHash(t *testing.T) {
	rr := serve(newTestRouter(t, authorizedAs(alice), nil, nil), http.MethodGet, "/users/me/", "", bearer)

	require.Equal(t, http.StatusOK, rr.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	assert.Equal(t, "alice@example.com", got["email"])
	assert.Equal(t, "editor", got["role"])
	assert.Equal(t, false, got["disabled"])
	assert.Contains(t, got, "created_at")
	assert.NotContains(t, rr.Body.String(), alice.PasswordHash)
}

func TestMe_WithoutAuthorization(t *testing.T) {
	rr := serve(newTestRouter(t, authorizedAs(alice), nil, nil), http.MethodGet, "/users/me", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Could not validate credentials", decodeDetail(t, rr))
}

func TestRefreshToken(t *testing.T) {
	auth := authorizedAs(alice)
	auth.refreshFn = func(_ context.Context, user models.User) (models.Token, error) {
		assert.Equal(t, alice, user)
		return stubToken("fresh.jwt.value"), nil
	}

	rr := serve(newTestRouter(t, auth, nil, nil), http.MethodPost, "/token/refresh", "", bearer)

	require.Equal(t, http.StatusOK, rr.Code)
	var body models.AccessToken
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "fresh.jwt.value", body.AccessToken)
}

func TestRefreshToken_IssueFailure(t *testing.T) {
	auth := authorizedAs(alice)
	auth.refreshFn = func(context.Context, models.User) (models.Token, error) {
		return models.Token{}, service.ErrTokenCreationFailed
	}

	rr := serve(newTestRouter(t, auth, nil, nil), http.MethodPost, "/token/refresh", "", bearer)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

// Handlers behind the auth middleware still refuse to run without a user
// in the context.
func TestProtectedHandlers_WithoutContextUser(t *testing.T) {
	h := newTestHandler()

	for name, handler := range map[string]http.HandlerFunc{
		"me":      h.me,
		"refresh": h.refreshToken,
	} {
		t.Run(name, func(t *testing.T) {
			rr := serve(handler, http.MethodGet, "/", "", nil)
			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Equal(t, "Bearer", rr.Header().Get("WWW-Authenticate"))
		})
	}
}
