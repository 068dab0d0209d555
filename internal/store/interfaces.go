package store

import (
	"context"

	"github.com/MKhiriev/go-user-accounts/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/user_repository_mock.go -package=mock

// UserRepository persists user accounts keyed by numeric id and unique email.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id int64) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
	ListUsers(ctx context.Context, req models.ListRequest) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, changes models.UserChanges) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
