package adapter

import "errors"

// Errors returned by [AccountsClient] implementations, one per HTTP status
// the service produces. The server's "detail" message is appended.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrGatewayTimeout      = errors.New("gateway timeout")
)
