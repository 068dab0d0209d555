package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("password must be 8 to 40 characters long")
	ErrWeakPassword     = errors.New("password must contain lowercase and uppercase letters, a digit and a symbol")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidLimit     = errors.New("limit must be between 1 and 100")
	ErrNoFieldsToUpdate = errors.New("at least one field must be provided for update")
	ErrEmptyCredentials = errors.New("username and password are required")
)
