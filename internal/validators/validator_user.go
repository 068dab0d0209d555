package validators

import (
	"context"
	"net/mail"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-user-accounts/models"
)

const (
	FieldEmail       = "email"
	FieldPassword    = "password"
	FieldRole        = "role"
	FieldDisabled    = "disabled"
	FieldUserID      = "user_id"
	FieldLimit       = "limit"
	FieldCredentials = "credentials"
)

const (
	MaxEmailLength    = 255
	MinPasswordLength = 8
	MaxPasswordLength = 40

	// MaxListLimit caps the page size of a user listing.
	MaxListLimit = 100

	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

type UserValidator struct {
}

func NewUserValidator() Validator {
	return &UserValidator{}
}

// Credentials is a login attempt as received from the token endpoint.
type Credentials struct {
	Username string
	Password string
}

func (v *UserValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.UserCreate:
		return v.validateUserCreate(ctx, value, fields...)
	case *models.UserCreate:
		return v.validateUserCreate(ctx, *value, fields...)

	case models.UserUpdate:
		return v.validateUserUpdate(ctx, value, fields...)
	case *models.UserUpdate:
		return v.validateUserUpdate(ctx, *value, fields...)

	case models.ListRequest:
		return v.validateListRequest(ctx, value, fields...)
	case *models.ListRequest:
		return v.validateListRequest(ctx, *value, fields...)

	case Credentials:
		return v.validateCredentials(ctx, value, fields...)

	case int64:
		return v.validateUserID(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

func (v *UserValidator) validateUserCreate(ctx context.Context, user models.UserCreate, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldRole}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if !isValidEmail(user.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if !isValidPasswordLength(user.Password) {
				return ErrInvalidPassword
			}
		case FieldRole:
			if user.Role != "" && !user.Role.Valid() {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateUserUpdate(ctx context.Context, update models.UserUpdate, fields ...string) error {
	if update.Empty() {
		return ErrNoFieldsToUpdate
	}

	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword, FieldDisabled}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			if update.Email != nil && !isValidEmail(*update.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if update.Password == nil {
				continue
			}
			if !isValidPasswordLength(*update.Password) {
				return ErrInvalidPassword
			}
			if !isStrongPassword(*update.Password) {
				return ErrWeakPassword
			}
		case FieldDisabled:
			// any value is acceptable
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateListRequest(ctx context.Context, req models.ListRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldLimit}
	}

	for _, f := range fields {
		switch f {
		case FieldLimit:
			if req.Limit == 0 || req.Limit > MaxListLimit {
				return ErrInvalidLimit
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateCredentials(ctx context.Context, c Credentials, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCredentials}
	}

	for _, f := range fields {
		switch f {
		case FieldCredentials:
			if c.Username == "" || c.Password == "" {
				return ErrEmptyCredentials
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *UserValidator) validateUserID(ctx context.Context, id int64, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUserID}
	}

	for _, f := range fields {
		switch f {
		case FieldUserID:
			if id <= 0 {
				return ErrInvalidUserID
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// isValidEmail accepts a bare RFC 5322 address (no display name) of at most
// MaxEmailLength bytes.
func isValidEmail(email string) bool {
	if email == "" || len(email) > MaxEmailLength {
		return false
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || addr.Name != "" {
		return false
	}

	return true
}

func isValidPasswordLength(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= MinPasswordLength && n <= MaxPasswordLength && len(password) <= maxPasswordBytes
}

// isStrongPassword requires at least one lowercase letter, one uppercase
// letter, one digit and one symbol (any rune that is neither a letter nor a
// digit).
func isStrongPassword(password string) bool {
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
