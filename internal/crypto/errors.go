package crypto

import "errors"

var (
	ErrHashingFailure = errors.New("password hashing failed")
)
