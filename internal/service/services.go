package service

import (
	"fmt"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/crypto"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/store"
)

type Services struct {
	AuthService    AuthService
	TokenService   TokenService
	UserService    UserService
	AppInfoService AppInfoService
}

// NewServices wires every service over the given storages. The password
// hasher is built from cfg.App.BcryptCost. A nil clock selects time.Now.
func NewServices(storages *store.Storages, cfg *config.StructuredConfig, clock Clock, logger *logger.Logger) (*Services, error) {
	hasher, err := crypto.NewPasswordHasher(cfg.App.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("error creating password hasher: %w", err)
	}

	tokenService, err := NewTokenService(cfg.App, clock, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating token service: %w", err)
	}

	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating app info service: %w", err)
	}

	userService := NewUserValidationService().Wrap(
		NewUserService(storages.UserRepository, hasher, clock, logger),
	)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, hasher, tokenService, logger),
		TokenService:   tokenService,
		UserService:    userService,
		AppInfoService: appInfoService,
	}, nil
}
