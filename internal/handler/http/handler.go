package http

import (
	"github.com/kispace/kispace-server/internal/config"
	"github.com/kispace/kispace-server/internal/logger"
	"github.com/kispace/kispace-server/internal/service"
)

type Handler struct {
	services *service.Services

	// environment gates the development bypass token: the token is only
	// consulted when the environment is dev or test.
	environment string
	bypassToken string

	staticDir      string
	allowedOrigins []string

	// version is the application version reported by /api/version.
	version string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		environment:    cfg.App.Environment,
		bypassToken:    cfg.Auth.BypassToken,
		staticDir:      cfg.Server.StaticDir,
		allowedOrigins: cfg.Server.AllowedOrigins,
		version:        cfg.App.Version,
		logger:         logger,
	}
}
