package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	account, token, err := h.services.AccountService.Signup(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", account.ID).Str("username", account.Username).Msg("account created")

	utils.WriteJSON(w, models.NewSessionResponse(account, token), http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	account, token, err := h.services.AccountService.Login(ctx, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().Str("id", account.ID).Msg("account successfully logged in")

	utils.WriteJSON(w, models.NewSessionResponse(account, token), http.StatusOK)
}
