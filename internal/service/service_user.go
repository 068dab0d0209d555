package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-accounts/internal/crypto"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/store"
	"github.com/MKhiriev/go-user-accounts/models"
)

type userService struct {
	userRepository store.UserRepository
	hasher         crypto.PasswordHasher
	now            Clock

	logger *logger.Logger
}

// NewUserService returns a UserService that hashes passwords before they
// reach the repository. Input is expected to be validated by a wrapper.
func NewUserService(userRepository store.UserRepository, hasher crypto.PasswordHasher, clock Clock, logger *logger.Logger) UserService {
	if clock == nil {
		clock = time.Now
	}

	return &userService{
		userRepository: userRepository,
		hasher:         hasher,
		now:            clock,
		logger:         logger,
	}
}

func (s *userService) CreateUser(ctx context.Context, user models.UserCreate) (models.User, error) {
	log := logger.FromContext(ctx)

	hash, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, err
	}

	role := user.Role
	if role == "" {
		role = models.RoleEditor
	}

	created, err := s.userRepository.CreateUser(ctx, models.User{
		Email:        user.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, store.ErrEmailAlreadyExists) {
			return models.User{}, ErrEmailAlreadyRegistered
		}
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	log.Info().Int64("id", created.ID).Msg("user created")
	return created, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (models.User, error) {
	user, err := s.userRepository.FindUserByID(ctx, id)
	if err != nil {
		return models.User{}, s.mapRepositoryError(ctx, err, "user search by id failed")
	}

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context, req models.ListRequest) ([]models.User, error) {
	users, err := s.userRepository.ListUsers(ctx, req)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("listing users failed")
		return nil, fmt.Errorf("listing users failed: %w", err)
	}

	return users, nil
}

// UpdateUser applies the non-nil fields of update. A new password is hashed
// first so that the hash and the other fields land in one statement.
func (s *userService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	changes := models.UserChanges{
		Email:    update.Email,
		Disabled: update.Disabled,
	}

	if update.Password != nil {
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			logger.FromContext(ctx).Err(err).Msg("password hashing failed")
			return models.User{}, err
		}
		changes.PasswordHash = &hash
	}

	if changes.Empty() {
		return models.User{}, ErrInvalidDataProvided
	}

	user, err := s.userRepository.UpdateUser(ctx, id, changes)
	if err != nil {
		return models.User{}, s.mapRepositoryError(ctx, err, "user update failed")
	}

	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.userRepository.DeleteUser(ctx, id); err != nil {
		return s.mapRepositoryError(ctx, err, "user deletion failed")
	}

	logger.FromContext(ctx).Info().Int64("id", id).Msg("user deleted")
	return nil
}

func (s *userService) mapRepositoryError(ctx context.Context, err error, msg string) error {
	switch {
	case errors.Is(err, store.ErrNoUserWasFound):
		return ErrUserNotFound
	case errors.Is(err, store.ErrEmailAlreadyExists):
		return ErrEmailAlreadyRegistered
	case errors.Is(err, store.ErrNothingToUpdate):
		return ErrInvalidDataProvided
	}

	logger.FromContext(ctx).Err(err).Msg(msg)
	return fmt.Errorf("%s: %w", msg, err)
}
