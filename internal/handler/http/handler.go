package http

import (
	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/metrics"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/internal/validators"
)

type Handler struct {
	services *service.Services

	// metrics is optional; a nil value disables instrumentation and the
	// /metrics route.
	metrics *metrics.Metrics

	// validator checks token request forms before they reach AuthService.
	validator validators.Validator

	// traceIDs generates trace ids for requests that arrive without a usable
	// one.
	traceIDs traceIDGenerator

	cfg config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		metrics:   m,
		validator: validators.NewUserValidator(),
		traceIDs:  utils.NewUUIDGenerator(),
		cfg:       cfg,
		logger:    logger,
	}
}
