package service

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-user-accounts/internal/config"
	"github.com/MKhiriev/go-user-accounts/internal/logger"
)

// appInfoService reports static facts about the running build.
type appInfoService struct {
	version string
}

// NewAppInfoService fails with [ErrVersionIsNotSpecified] when cfg.Version
// is blank; the binary falls back to its linker-injected version before
// calling it.
func NewAppInfoService(cfg config.App, logger *logger.Logger) (AppInfoService, error) {
	version := strings.TrimSpace(cfg.Version)
	if version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	logger.Info().Str("version", version).Msg("serving application version")
	return &appInfoService{version: version}, nil
}

func (s *appInfoService) GetAppVersion(context.Context) string {
	return s.version
}
