package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-accounts/models"
)

// TokenService issues and validates signed bearer tokens.
type TokenService interface {
	// IssueToken signs a token for subject that expires ttl from now.
	// A zero ttl selects the configured default lifetime.
	IssueToken(ctx context.Context, subject string, ttl time.Duration) (models.Token, error)

	// ValidateToken returns the subject of a genuine, unexpired token or one
	// of ErrTokenMalformed, ErrTokenExpired.
	ValidateToken(ctx context.Context, tokenString string) (string, error)
}

// AuthService checks credentials at login time and bearer tokens on every
// protected request.
type AuthService interface {
	// Authenticate returns the account matching email and password.
	// An unknown email and a wrong password both yield ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, password string) (models.User, error)

	// Login authenticates the credentials and issues a token for the account.
	Login(ctx context.Context, email, password string) (models.Token, error)

	// Authorize walks a raw bearer token through validation, subject
	// resolution and the active-account check.
	Authorize(ctx context.Context, tokenString string) (models.User, error)

	// RefreshToken issues a fresh token for an already authorized user.
	RefreshToken(ctx context.Context, user models.User) (models.Token, error)
}

// UserService manages user accounts.
type UserService interface {
	CreateUser(ctx context.Context, user models.UserCreate) (models.User, error)
	GetUser(ctx context.Context, id int64) (models.User, error)
	ListUsers(ctx context.Context, req models.ListRequest) ([]models.User, error)
	UpdateUser(ctx context.Context, id int64, update models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserServiceWrapper defines middleware composition for UserService.
// Implementations wrap an existing UserService to add behavior such as
// logging or validating.
type UserServiceWrapper interface {
	Wrap(UserService) UserService // returns a decorated UserService applying additional behavior
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}
