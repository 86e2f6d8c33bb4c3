package service

import (
	"github.com/MKhiriev/go-blog-identity/internal/adapter"
	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/store"
	"github.com/MKhiriev/go-blog-identity/internal/validators"
)

type Services struct {
	TokenService      TokenService
	AccountService    AccountService
	FederationService FederationService
}

func NewServices(repositories *store.Repositories, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	validator := validators.NewAccountValidator()
	hasher := NewCredentialHasher(cfg.App, logger)
	tokens := NewTokenService(cfg.App, logger)
	allocator := NewUsernameAllocator(repositories.AccountRepository, logger)

	verifiers := []adapter.IdentityVerifier{
		adapter.NewGoogleVerifier(cfg.Federation, logger),
		adapter.NewFacebookVerifier(cfg.Federation, logger),
	}

	return &Services{
		TokenService: tokens,
		AccountService: NewAccountService(
			repositories.AccountRepository, hasher, tokens, allocator, validator, cfg.App.AdminEmails, logger),
		FederationService: NewFederationService(
			repositories.AccountRepository, tokens, allocator, validator, verifiers, cfg.App.AdminEmails, logger),
	}
}
