package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var user models.UserCreate
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	created, err := h.services.UserService.CreateUser(r.Context(), user)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.UsersCreatedTotal.Inc()
	}

	utils.WriteJSON(w, created.Public(), http.StatusCreated)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	req, err := listRequestFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	users, err := h.services.UserService.ListUsers(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	public := make([]models.UserPublic, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	utils.WriteJSON(w, public, http.StatusOK)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.services.UserService.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.UserUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, r, fmt.Errorf("%w: %w", ErrInvalidBody, err))
		return
	}

	user, err := h.services.UserService.UpdateUser(r.Context(), id, update)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, user.Public(), http.StatusOK)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := userIDFromPath(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err := h.services.UserService.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	if h.metrics != nil {
		h.metrics.UsersDeletedTotal.Inc()
	}

	w.WriteHeader(http.StatusNoContent)
}

func userIDFromPath(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, ErrInvalidUserID
	}
	return id, nil
}

// listRequestFromQuery reads offset (default 0) and limit (default
// validators.MaxListLimit) from the query string.
func listRequestFromQuery(r *http.Request) (models.ListRequest, error) {
	req := models.ListRequest{Limit: validators.MaxListLimit}
	query := r.URL.Query()

	if v := query.Get("offset"); v != "" {
		offset, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return models.ListRequest{}, ErrInvalidQuery
		}
		req.Offset = offset
	}

	if v := query.Get("limit"); v != "" {
		limit, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return models.ListRequest{}, ErrInvalidQuery
		}
		req.Limit = limit
	}

	return req, nil
}
