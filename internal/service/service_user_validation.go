package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
)

// UserValidationService rejects malformed input before it reaches the
// wrapped UserService. Every rejection wraps ErrInvalidDataProvided together
// with the validator's own sentinel.
type UserValidationService struct {
	inner     UserService
	validator validators.Validator
}

func NewUserValidationService() UserServiceWrapper {
	return &UserValidationService{
		validator: validators.NewUserValidator(),
	}
}

func (v *UserValidationService) CreateUser(ctx context.Context, user models.UserCreate) (models.User, error) {
	if err := v.validator.Validate(ctx, user); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.CreateUser(ctx, user)
}

func (v *UserValidationService) GetUser(ctx context.Context, id int64) (models.User, error) {
	if err := v.validator.Validate(ctx, id); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.GetUser(ctx, id)
}

func (v *UserValidationService) ListUsers(ctx context.Context, req models.ListRequest) ([]models.User, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.ListUsers(ctx, req)
}

func (v *UserValidationService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error) {
	if err := v.validator.Validate(ctx, id); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.UpdateUser(ctx, id, update)
}

func (v *UserValidationService) DeleteUser(ctx context.Context, id int64) error {
	if err := v.validator.Validate(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataProvided, err)
	}

	return v.inner.DeleteUser(ctx, id)
}

func (v *UserValidationService) Wrap(wrapped UserService) UserService {
	v.inner = wrapped
	return v
}
