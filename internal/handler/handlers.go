// Package handler wires transport handlers over the service layer.
package handler

import (
	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/handler/http"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/ratelimit"
	"github.com/MKhiriev/go-blog-identity/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handlers {
	logger.Info().Msg("creating new handlers...")

	limiter := ratelimit.NewLimiter(cfg.RateLimit, logger)

	return &Handlers{
		HTTP: http.NewHandler(services, limiter, cfg.Server, logger),
	}
}
