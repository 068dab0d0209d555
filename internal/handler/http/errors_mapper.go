package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/crypto"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/store"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
)

// Response details. They never carry hashes, tokens or internal error text.
const (
	detailIncorrectCredentials = "Incorrect username or password"
	detailCouldNotValidate     = "Could not validate credentials"
	detailInactiveUser         = "Inactive user"
	detailUserNotFound         = "User not found"
	detailEmailRegistered      = "Email already registered"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidDataProvided:    http.StatusBadRequest,
	service.ErrInvalidCredentials:     http.StatusUnauthorized,
	service.ErrTokenMalformed:         http.StatusUnauthorized,
	service.ErrTokenExpired:           http.StatusUnauthorized,
	service.ErrUnknownSubject:         http.StatusUnauthorized,
	service.ErrAccountDisabled:        http.StatusForbidden,
	service.ErrUserNotFound:           http.StatusNotFound,
	service.ErrEmailAlreadyRegistered: http.StatusConflict,
	service.ErrTokenCreationFailed:    http.StatusInternalServerError,

	ErrInvalidUserID: http.StatusBadRequest,
	ErrInvalidQuery:  http.StatusBadRequest,
	ErrInvalidBody:   http.StatusBadRequest,

	crypto.ErrHashingFailure: http.StatusInternalServerError,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

var errorDetailMap = map[error]string{
	service.ErrInvalidCredentials:     detailIncorrectCredentials,
	service.ErrTokenMalformed:         detailCouldNotValidate,
	service.ErrTokenExpired:           detailCouldNotValidate,
	service.ErrUnknownSubject:         detailCouldNotValidate,
	service.ErrAccountDisabled:        detailInactiveUser,
	service.ErrUserNotFound:           detailUserNotFound,
	service.ErrEmailAlreadyRegistered: detailEmailRegistered,
}

func statusFromError(err error) int {
	// checked first: storage errors may wrap it
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// detailFromError returns the client-facing message for err. Validation
// failures expose the validator message; anything unexpected is reduced to
// the status text.
func detailFromError(err error, status int) string {
	for target, detail := range errorDetailMap {
		if errors.Is(err, target) {
			return detail
		}
	}
	if status == http.StatusBadRequest {
		return err.Error()
	}
	return http.StatusText(status)
}

// writeError maps err to a status code and a {"detail": ...} body. Every 401
// carries a Bearer challenge.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	log := logger.FromRequest(r)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
	} else {
		log.Debug().Err(err).Int("status", status).Msg("request rejected")
	}

	writeDetail(w, status, detailFromError(err, status))
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.WriteJSON(w, models.ErrorResponse{Detail: detail}, status)
}
