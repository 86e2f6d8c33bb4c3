package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog-identity/internal/adapter"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/store"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/internal/validators"
	"github.com/MKhiriev/go-blog-identity/models"
)

// federationService is the concrete implementation of FederationService.
// It delegates assertion verification to per-provider adapters and maps
// verified identities onto accounts.
type federationService struct {
	accounts  store.AccountRepository
	tokens    TokenService
	allocator UsernameAllocator
	validator validators.Validator
	verifiers map[string]adapter.IdentityVerifier
	ids       *utils.UUIDGenerator

	adminEmails map[string]struct{}

	logger *logger.Logger
}

// NewFederationService constructs a [FederationService]. The verifiers
// are indexed by their provider name; a request naming any other provider
// fails with ErrUnknownProvider.
func NewFederationService(
	accounts store.AccountRepository,
	tokens TokenService,
	allocator UsernameAllocator,
	validator validators.Validator,
	verifiers []adapter.IdentityVerifier,
	adminEmails []string,
	logger *logger.Logger,
) FederationService {
	byProvider := make(map[string]adapter.IdentityVerifier, len(verifiers))
	for _, v := range verifiers {
		byProvider[v.Provider()] = v
	}

	allowList := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowList[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &federationService{
		accounts:    accounts,
		tokens:      tokens,
		allocator:   allocator,
		validator:   validator,
		verifiers:   byProvider,
		ids:         utils.NewUUIDGenerator(),
		adminEmails: allowList,
		logger:      logger,
	}
}

// Authenticate implements [FederationService].
//
// The assertion is verified with the provider before any account is
// touched. A verified identity then either logs into the matching
// account, implicitly links the provider to a passwordless account with
// the same email, or provisions a new passwordless account.
//
// Returns:
//   - ErrUnknownProvider for providers outside the supported set.
//   - ErrUpstreamVerification (wrapped) when the provider rejects the
//     assertion or cannot be reached.
//   - ErrProviderMismatch (wrapped) when the email belongs to a
//     local-credential account: federation must never take one over.
func (f *federationService) Authenticate(ctx context.Context, provider string, request models.FederationRequest) (models.Account, models.Token, error) {
	log := logger.FromContext(ctx)

	verifier, ok := f.verifiers[provider]
	if !ok {
		return models.Account{}, models.Token{}, fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	if err := f.validator.Validate(ctx, request); err != nil {
		return models.Account{}, models.Token{}, err
	}

	identity, err := verifier.Verify(ctx, request.Assertion)
	if err != nil {
		log.Err(err).Str("provider", provider).Msg("assertion verification failed")
		return models.Account{}, models.Token{}, fmt.Errorf("%w: %w", ErrUpstreamVerification, err)
	}

	identity.Email = strings.ToLower(identity.Email)
	if provider == models.ProviderGoogle {
		// Google hands out a 96px thumbnail by default.
		identity.AvatarURL = strings.Replace(identity.AvatarURL, "s96-c", "s384-c", 1)
	}

	account, err := f.accounts.FindByEmail(ctx, identity.Email)
	switch {
	case err == nil:
		account, err = f.loginExisting(ctx, account, provider)
	case errors.Is(err, store.ErrAccountNotFound):
		account, err = f.provision(ctx, identity, provider)
	default:
		log.Err(err).Str("email", identity.Email).Msg("account search by email failed")
		return models.Account{}, models.Token{}, fmt.Errorf("account search by email failed: %w", err)
	}
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	token, err := f.tokens.Issue(ctx, account)
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	return account, token, nil
}

// loginExisting applies the provider-consistency rules to an account that
// already holds the verified email.
//
// An account linked to the provider logs straight in. A passwordless
// account linked to a different provider gets this provider linked
// implicitly on first successful verification. A local-credential account
// is never taken over by a federation login.
func (f *federationService) loginExisting(ctx context.Context, account models.Account, provider string) (models.Account, error) {
	log := logger.FromContext(ctx)

	if providerLinked(account, provider) {
		return account, nil
	}

	if account.HasPassword() {
		return models.Account{}, fmt.Errorf(
			"%w: this email was signed up without %s, please log in with password to access the account",
			ErrProviderMismatch, provider)
	}

	if err := f.accounts.LinkProvider(ctx, account.ID, provider); err != nil {
		log.Err(err).Str("id", account.ID).Str("provider", provider).Msg("provider linking ended with error")
		return models.Account{}, err
	}

	switch provider {
	case models.ProviderGoogle:
		account.GoogleLinked = true
	case models.ProviderFacebook:
		account.FacebookLinked = true
	}

	log.Info().Str("id", account.ID).Str("provider", provider).Msg("provider linked to existing account")
	return account, nil
}

// provision creates a passwordless account for a verified identity that
// has no account yet.
func (f *federationService) provision(ctx context.Context, identity models.ExternalIdentity, provider string) (models.Account, error) {
	log := logger.FromContext(ctx)

	username, err := f.allocator.Allocate(ctx, identity.Email)
	if err != nil {
		return models.Account{}, err
	}

	fullname := strings.ToLower(strings.TrimSpace(identity.Name))
	avatar := identity.AvatarURL
	if avatar == "" {
		avatar = DefaultAvatarURL(fullname)
	}

	_, isAdmin := f.adminEmails[identity.Email]

	account := models.Account{
		ID:              f.ids.Generate(),
		Email:           identity.Email,
		Username:        username,
		Fullname:        fullname,
		ProfileImageURL: avatar,
		IsAdmin:         isAdmin,
		GoogleLinked:    provider == models.ProviderGoogle,
		FacebookLinked:  provider == models.ProviderFacebook,
	}

	created, err := f.accounts.Insert(ctx, account)
	if err != nil {
		log.Err(err).Str("email", identity.Email).Msg("federated account creation ended with error")
		return models.Account{}, err
	}

	return created, nil
}

func providerLinked(account models.Account, provider string) bool {
	switch provider {
	case models.ProviderGoogle:
		return account.GoogleLinked
	case models.ProviderFacebook:
		return account.FacebookLinked
	default:
		return false
	}
}
