// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultTokenDuration is the lifetime of an access token when none is
	// configured.
	DefaultTokenDuration = 30 * time.Minute

	// DefaultTokenSigningAlgorithm is the JWT algorithm used when none is
	// configured.
	DefaultTokenSigningAlgorithm = "HS256"

	// DefaultHTTPAddress is the listen address used when none is configured.
	DefaultHTTPAddress = "localhost:8080"

	DefaultLogLevel = "info"
)

// DefaultAllowedOrigins is the CORS allow-list used when none is configured.
var DefaultAllowedOrigins = []string{"http://localhost:3000"}

var supportedSigningAlgorithms = []string{"HS256", "HS384", "HS512"}

// setDefaults fills in every optional field that was left empty by all
// configuration sources.
func (cfg *StructuredConfig) setDefaults() {
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = DefaultTokenDuration
	}
	if cfg.App.TokenSigningAlgorithm == "" {
		cfg.App.TokenSigningAlgorithm = DefaultTokenSigningAlgorithm
	}
	if cfg.App.BcryptCost == 0 {
		cfg.App.BcryptCost = bcrypt.DefaultCost
	}
	if cfg.App.LogLevel == "" {
		cfg.App.LogLevel = DefaultLogLevel
	}
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = slices.Clone(DefaultAllowedOrigins)
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a descriptive error wrapping
// one of the ErrInvalid* sentinels otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if !slices.Contains(supportedSigningAlgorithms, cfg.App.TokenSigningAlgorithm) {
		return fmt.Errorf("%w: unsupported signing algorithm %q", ErrInvalidAppConfigs, cfg.App.TokenSigningAlgorithm)
	}
	if cfg.App.TokenDuration < 0 {
		return fmt.Errorf("%w: token duration must be positive", ErrInvalidAppConfigs)
	}
	if cfg.App.BcryptCost < bcrypt.MinCost || cfg.App.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: bcrypt cost must be in [%d, %d]", ErrInvalidAppConfigs, bcrypt.MinCost, bcrypt.MaxCost)
	}
	if _, err := zerolog.ParseLevel(cfg.App.LogLevel); err != nil || cfg.App.LogLevel == "" {
		return fmt.Errorf("%w: unknown log level %q", ErrInvalidAppConfigs, cfg.App.LogLevel)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	return nil
}
