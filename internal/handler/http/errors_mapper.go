package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/service"
	"github.com/MKhiriev/go-blog-identity/internal/store"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/internal/validators"
	"github.com/MKhiriev/go-blog-identity/models"
)

// Stable machine-checkable error kinds carried in the error envelope.
const (
	KindValidation      = "validation"
	KindUniqueViolation = "unique_violation"
	KindNotFound        = "not_found"
	KindForbidden       = "forbidden"
	KindUnauthenticated = "unauthenticated"
	KindUpstreamTrust   = "upstream_trust"
	KindRateLimited     = "rate_limited"
	KindStore           = "store"
)

// errorMapping binds a sentinel error to the HTTP status and envelope kind
// it translates to at the transport boundary.
type errorMapping struct {
	target error
	status int
	kind   string
}

// errorMappings is checked in order with [errors.Is]; the first match wins.
// Anything unmatched is a server-class error and gets 500 with a generic
// message so that store or crypto internals never leak to callers.
var errorMappings = []errorMapping{
	{validators.ErrEmptyEmail, http.StatusBadRequest, KindValidation},
	{validators.ErrEmptyPassword, http.StatusBadRequest, KindValidation},
	{validators.ErrInvalidEmail, http.StatusBadRequest, KindValidation},
	{validators.ErrInvalidPassword, http.StatusBadRequest, KindValidation},
	{validators.ErrFullnameTooShort, http.StatusBadRequest, KindValidation},
	{validators.ErrUsernameTooShort, http.StatusBadRequest, KindValidation},
	{validators.ErrBioTooLong, http.StatusBadRequest, KindValidation},
	{validators.ErrInvalidSocialLink, http.StatusBadRequest, KindValidation},
	{validators.ErrWrongSocialHost, http.StatusBadRequest, KindValidation},
	{validators.ErrEmptyAssertion, http.StatusBadRequest, KindValidation},
	{validators.ErrNoFieldsToUpdate, http.StatusBadRequest, KindValidation},
	{ErrInvalidJSON, http.StatusBadRequest, KindValidation},
	{service.ErrInvalidDataProvided, http.StatusBadRequest, KindValidation},
	{service.ErrUnknownProvider, http.StatusBadRequest, KindValidation},

	{store.ErrEmailAlreadyExists, http.StatusConflict, KindUniqueViolation},
	{store.ErrUsernameAlreadyTaken, http.StatusConflict, KindUniqueViolation},

	{store.ErrAccountNotFound, http.StatusNotFound, KindNotFound},

	{service.ErrEmailNotFound, http.StatusForbidden, KindForbidden},
	{service.ErrWrongPassword, http.StatusForbidden, KindForbidden},
	{service.ErrFederatedAccount, http.StatusForbidden, KindForbidden},
	{service.ErrProviderMismatch, http.StatusForbidden, KindForbidden},
	{service.ErrForbidden, http.StatusForbidden, KindForbidden},

	{service.ErrTokenIsExpiredOrInvalid, http.StatusForbidden, KindUnauthenticated},
	{ErrEmptyAuthorizationHeader, http.StatusUnauthorized, KindUnauthenticated},
	{ErrInvalidAuthorizationHeader, http.StatusForbidden, KindUnauthenticated},
	{ErrEmptyToken, http.StatusForbidden, KindUnauthenticated},

	{service.ErrUpstreamVerification, http.StatusForbidden, KindUpstreamTrust},
}

// writeError translates err into the uniform error envelope and writes it.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			log.Warn().Err(err).Int("status", m.status).Str("kind", m.kind).Send()
			utils.WriteJSON(w, models.ErrorResponse{
				Error: models.ErrorBody{Kind: m.kind, Message: err.Error()},
			}, m.status)
			return
		}
	}

	log.Err(err).Msg("unexpected server error")
	utils.WriteJSON(w, models.ErrorResponse{
		Error: models.ErrorBody{Kind: KindStore, Message: "internal server error"},
	}, http.StatusInternalServerError)
}
