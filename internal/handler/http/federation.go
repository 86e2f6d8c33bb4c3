package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) federate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	provider := chi.URLParam(r, "provider")

	var request models.FederationRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	account, token, err := h.services.FederationService.Authenticate(ctx, provider, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", account.ID).Str("provider", provider).Msg("federated login succeeded")

	utils.WriteJSON(w, models.NewSessionResponse(account, token), http.StatusOK)
}
