package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrInvalidCredentials  = errors.New("incorrect username or password")

	ErrTokenMalformed      = errors.New("token is malformed")
	ErrTokenExpired        = errors.New("token is expired")
	ErrTokenCreationFailed = errors.New("token creation failed")
	ErrUnknownSubject      = errors.New("token subject does not match any user")
	ErrAccountDisabled     = errors.New("inactive user")

	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyRegistered = errors.New("email already registered")

	ErrUnsupportedSigningMethod = errors.New("unsupported token signing method")
	ErrVersionIsNotSpecified    = errors.New("app version is not specified")
)
