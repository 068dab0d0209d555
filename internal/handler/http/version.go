package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
)

// root is the liveness probe.
func (h *Handler) root(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, models.MessageResponse{Message: "Hello World"}, http.StatusOK)
}

// getServerVersion answers with the bare version string so shell scripts
// can consume it without a JSON parser.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	version := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	if _, err := io.WriteString(w, version); err != nil {
		logger.FromRequest(r).Debug().Err(err).Msg("version response not delivered")
	}
}
