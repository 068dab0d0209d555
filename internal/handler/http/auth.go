package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/metrics"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
)

// login exchanges form-encoded "username" (the account email) and "password"
// for a bearer token.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	credentials := validators.Credentials{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := h.validator.Validate(ctx, credentials); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err))
		return
	}

	token, err := h.services.AuthService.Login(ctx, credentials.Username, credentials.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.observeLogin(metrics.LoginInvalidCredentials)
		} else {
			h.observeLogin(metrics.LoginFailed)
		}
		writeError(w, r, err)
		return
	}

	h.observeLogin(metrics.LoginSucceeded)
	log.Debug().Msg("token issued")

	utils.WriteToken(w, models.NewAccessToken(token))
}

// refreshToken issues a new token for the already authorized caller.
func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	user, ok := utils.GetUserFromContext(ctx)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailCouldNotValidate)
		return
	}

	token, err := h.services.AuthService.RefreshToken(ctx, user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteToken(w, models.NewAccessToken(token))
}

// me returns the profile of the authorized caller.
func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetUserFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, detailCouldNotValidate)
		return
	}

	utils.WriteJSON(w, user, http.StatusOK)
}

func (h *Handler) observeLogin(outcome string) {
	if h.metrics == nil {
		return
	}
	h.metrics.LoginAttemptsTotal.WithLabelValues(outcome).Inc()
}
