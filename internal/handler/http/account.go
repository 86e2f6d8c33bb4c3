package http

import (
	"encoding/json"
	"net/http"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	username := chi.URLParam(r, "username")

	profile, err := h.services.AccountService.GetProfile(ctx, username)
	if err != nil {
		writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var request models.ProfileUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	targetID := chi.URLParam(r, "id")

	profile, err := h.services.AccountService.UpdateProfile(ctx, session, targetID, request)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", targetID).Msg("profile updated")

	utils.WriteJSON(w, profile, http.StatusOK)
}

func (h *Handler) changePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	var request models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		writeError(w, r, ErrInvalidJSON)
		return
	}

	targetID := chi.URLParam(r, "id")

	if err := h.services.AccountService.ChangePassword(ctx, session, targetID, request); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", targetID).Msg("password changed")

	utils.WriteJSON(w, models.MessageResponse{Message: "password changed"}, http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	session, ok := utils.GetSessionFromContext(ctx)
	if !ok {
		writeError(w, r, ErrEmptyAuthorizationHeader)
		return
	}

	targetID := chi.URLParam(r, "id")

	if err := h.services.AccountService.Delete(ctx, session, targetID); err != nil {
		writeError(w, r, err)
		return
	}

	log.Info().Str("id", targetID).Msg("account deleted")

	utils.WriteJSON(w, models.MessageResponse{Message: "account deleted"}, http.StatusOK)
}
