package http

import (
	"net/http"

	"github.com/MKhiriev/go-blog-identity/internal/ratelimit"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(middleware.Recoverer)
	router.Use(withGZip)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   h.cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization", traceIDHeader},
		AllowCredentials: true,
	}))

	router.Get("/health", h.health)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(h.withRateLimit(ratelimit.ClassCreation)).Post("/accounts", h.signup)
		r.With(h.withRateLimit(ratelimit.ClassStandard)).Post("/accounts/login", h.login)
		r.With(h.withRateLimit(ratelimit.ClassCreation)).Post("/federation/{provider}", h.federate)
		r.With(h.withRateLimit(ratelimit.ClassStandard)).Get("/accounts/{username}", h.getProfile)
	})

	// routes acting on an owned account
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.With(h.withRateLimit(ratelimit.ClassMutation)).Put("/accounts/{id}", h.updateProfile)
		r.With(h.withRateLimit(ratelimit.ClassMutation)).Post("/accounts/{id}", h.changePassword)
		r.With(h.withRateLimit(ratelimit.ClassDeletion)).Delete("/accounts/{id}", h.deleteAccount)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}
