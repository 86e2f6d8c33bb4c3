package http

import (
	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/ratelimit"
	"github.com/MKhiriev/go-blog-identity/internal/service"
)

type Handler struct {
	services *service.Services
	limiter  *ratelimit.Limiter
	cfg      config.Server

	logger *logger.Logger
}

func NewHandler(services *service.Services, limiter *ratelimit.Limiter, cfg config.Server, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		limiter:  limiter,
		cfg:      cfg,
		logger:   logger,
	}
}
