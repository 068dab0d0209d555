package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
)

// authState is a step of the request authorization sequence. A request
// moves strictly forward through the steps and either ends Authorized or is
// rejected in the step it was in.
type authState string

const (
	stateExtracting     authState = "extracting"
	stateValidating     authState = "validating"
	stateResolving      authState = "resolving"
	stateCheckingActive authState = "checking_active"
	stateAuthorized     authState = "authorized"
)

// rejectedIn reports the step in which AuthService.Authorize gave up.
func rejectedIn(err error) authState {
	switch {
	case errors.Is(err, service.ErrTokenMalformed), errors.Is(err, service.ErrTokenExpired):
		return stateValidating
	case errors.Is(err, service.ErrAccountDisabled):
		return stateCheckingActive
	default:
		return stateResolving
	}
}

// auth is an HTTP middleware that enforces bearer-token authorization.
//
// It extracts the token from the "Authorization" header and hands it to
// [service.AuthService.Authorize], which validates it, resolves the subject
// to a user and checks that the account is active. On success the user is
// stored in the request context under [utils.UserCtxKey].
//
// Rejections:
//   - missing or malformed header, any token error, unknown subject:
//     401 with "WWW-Authenticate: Bearer" and one generic detail.
//   - disabled account: 403 "Inactive user".
//   - storage failure while resolving: 500.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.observeAuthorization(stateExtracting)
			log.Debug().Err(ErrEmptyAuthorizationHeader).Str("state", string(stateExtracting)).Msg("request rejected")
			writeDetail(w, http.StatusUnauthorized, detailCouldNotValidate)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			h.observeAuthorization(stateExtracting)
			log.Debug().Err(ErrInvalidAuthorizationHeader).Str("state", string(stateExtracting)).Msg("request rejected")
			writeDetail(w, http.StatusUnauthorized, detailCouldNotValidate)
			return
		}

		ctx := r.Context()
		user, err := h.services.AuthService.Authorize(ctx, tokenString)
		if err != nil {
			state := rejectedIn(err)
			h.observeAuthorization(state)
			log.Debug().Str("state", string(state)).Msg("authorization failed")
			writeError(w, r, err)
			return
		}

		h.observeAuthorization(stateAuthorized)

		// Store the authenticated user in the context so that downstream
		// handlers can use it without another lookup.
		ctx = utils.WithUser(ctx, user)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) observeAuthorization(state authState) {
	if h.metrics == nil {
		return
	}
	h.metrics.AuthorizationsTotal.WithLabelValues(string(state)).Inc()
}
