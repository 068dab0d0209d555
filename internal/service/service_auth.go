package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-accounts/internal/crypto"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/store"
	"github.com/MKhiriev/go-user-accounts/models"
)

// authService is the concrete implementation of AuthService.
// It verifies credentials against the stored bcrypt hash and resolves bearer
// tokens back to live accounts.
type authService struct {
	// userRepository is the data-access layer used to look up users.
	userRepository store.UserRepository

	// hasher verifies plaintext passwords against stored hashes.
	hasher crypto.PasswordHasher

	// tokenService signs and validates bearer tokens.
	tokenService TokenService

	// logger is the structured logger used for diagnostic and error output.
	logger *logger.Logger
}

// NewAuthService constructs a new AuthService. The returned service is safe
// for concurrent use; all state is read-only after construction.
func NewAuthService(userRepository store.UserRepository, hasher crypto.PasswordHasher, tokenService TokenService, logger *logger.Logger) AuthService {
	return &authService{
		userRepository: userRepository,
		hasher:         hasher,
		tokenService:   tokenService,
		logger:         logger,
	}
}

// Authenticate looks the account up by email and checks password against its
// hash. It performs exactly one repository read.
//
// Returns the stored user or:
//   - ErrInvalidCredentials if the email is unknown or the password is wrong.
//     An unknown email still pays for a full hash comparison.
//   - A wrapped storage error if the lookup itself fails.
func (a *authService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	foundUser, err := a.userRepository.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			a.hasher.Verify(password, "")
			log.Info().Msg("login attempt for unknown email")
			return models.User{}, ErrInvalidCredentials
		}
		log.Err(err).Msg("user search by email failed")
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(password, foundUser.PasswordHash) {
		log.Info().Int64("id", foundUser.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	return foundUser, nil
}

// Login authenticates the credentials and issues a token whose subject is
// the account email. Disabled accounts may still obtain a token; they are
// stopped by Authorize on every protected request.
func (a *authService) Login(ctx context.Context, email, password string) (models.Token, error) {
	user, err := a.Authenticate(ctx, email, password)
	if err != nil {
		return models.Token{}, err
	}

	return a.tokenService.IssueToken(ctx, user.Email, 0)
}

// Authorize resolves a bearer token to the account it was issued for.
//
// Returns the user or:
//   - ErrTokenMalformed / ErrTokenExpired from the token service.
//   - ErrUnknownSubject if no account has the token's subject anymore.
//   - ErrAccountDisabled if the account is disabled.
//   - A wrapped storage error if the lookup itself fails.
func (a *authService) Authorize(ctx context.Context, tokenString string) (models.User, error) {
	log := logger.FromContext(ctx)

	subject, err := a.tokenService.ValidateToken(ctx, tokenString)
	if err != nil {
		return models.User{}, err
	}

	user, err := a.userRepository.FindUserByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrNoUserWasFound) {
			log.Info().Msg("token subject no longer exists")
			return models.User{}, ErrUnknownSubject
		}
		log.Err(err).Msg("user search by token subject failed")
		return models.User{}, fmt.Errorf("user search by token subject failed: %w", err)
	}

	if user.Disabled {
		log.Info().Int64("id", user.ID).Msg("disabled account presented a valid token")
		return models.User{}, ErrAccountDisabled
	}

	return user, nil
}

func (a *authService) RefreshToken(ctx context.Context, user models.User) (models.Token, error) {
	return a.tokenService.IssueToken(ctx, user.Email, 0)
}
