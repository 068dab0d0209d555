// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/golang-jwt/jwt/v5"
)

// Clock returns the current instant. Services read time only through it so
// tests can move time forward.
type Clock func() time.Time

// tokenService is the concrete implementation of TokenService backed by
// HMAC-signed JWTs.
type tokenService struct {
	// signKey is the shared secret used to sign and verify tokens.
	signKey string

	// method is the only signing algorithm tokens are issued with and
	// accepted under.
	method jwt.SigningMethod

	// defaultTTL is applied when IssueToken is called with a zero ttl.
	defaultTTL time.Duration

	now Clock

	logger *logger.Logger
}

// NewTokenService builds a TokenService from the application config.
// A nil clock selects time.Now.
//
// Returns ErrUnsupportedSigningMethod if cfg names anything other than an
// HMAC algorithm known to jwt/v5.
func NewTokenService(cfg config.App, clock Clock, logger *logger.Logger) (TokenService, error) {
	method, ok := jwt.GetSigningMethod(cfg.TokenSigningAlgorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigningMethod, cfg.TokenSigningAlgorithm)
	}
	if clock == nil {
		clock = time.Now
	}

	return &tokenService{
		signKey:    cfg.TokenSignKey,
		method:     method,
		defaultTTL: cfg.TokenDuration,
		now:        clock,
		logger:     logger,
	}, nil
}

// IssueToken signs a token carrying subject as "sub" with "iat" set to now
// and "exp" set to now plus ttl.
func (s *tokenService) IssueToken(ctx context.Context, subject string, ttl time.Duration) (models.Token, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	token, err := utils.GenerateJWTToken(subject, ttl, s.signKey, s.method, s.now())
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ValidateToken verifies the signature and algorithm of tokenString before
// looking at its claims. A token is expired from its "exp" instant onward.
func (s *tokenService) ValidateToken(ctx context.Context, tokenString string) (string, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, s.method, s.now())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		logger.FromContext(ctx).Debug().Str("reason", err.Error()).Msg("token rejected")
		return "", ErrTokenMalformed
	}

	return token.Email(), nil
}
