package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/store"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/internal/validators"
	"github.com/MKhiriev/go-blog-identity/models"
)

// accountService is the concrete implementation of AccountService. It
// orchestrates the account lifecycle over the identity repository using
// the credential hasher, token service and username allocator.
type accountService struct {
	accounts  store.AccountRepository
	hasher    CredentialHasher
	tokens    TokenService
	allocator UsernameAllocator
	validator validators.Validator
	ids       *utils.UUIDGenerator

	// adminEmails is the allow-list consulted at creation time. Admin
	// status is derived from it server-side and is never client-settable.
	adminEmails map[string]struct{}

	logger *logger.Logger
}

// NewAccountService constructs an [AccountService] wired to the given
// collaborators. The admin allow-list from cfg.AdminEmails is normalised
// to lowercase at construction.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewAccountService(
	accounts store.AccountRepository,
	hasher CredentialHasher,
	tokens TokenService,
	allocator UsernameAllocator,
	validator validators.Validator,
	adminEmails []string,
	logger *logger.Logger,
) AccountService {
	allowList := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		allowList[strings.ToLower(strings.TrimSpace(email))] = struct{}{}
	}

	return &accountService{
		accounts:    accounts,
		hasher:      hasher,
		tokens:      tokens,
		allocator:   allocator,
		validator:   validator,
		ids:         utils.NewUUIDGenerator(),
		adminEmails: allowList,
		logger:      logger,
	}
}

// Signup creates a local-credential account.
//
// It validates the request, hashes the password, allocates a username,
// derives the admin flag from the allow-list and inserts the account.
// On success it issues a session token alongside the created account.
//
// Returns:
//   - A validation error from the validators package if the input fails
//     policy checks.
//   - store.ErrEmailAlreadyExists if the email is taken.
//   - A wrapped server error for hashing, allocation or store failures.
func (a *accountService) Signup(ctx context.Context, request models.SignupRequest) (models.Account, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.Account{}, models.Token{}, err
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))
	fullname := strings.ToLower(strings.TrimSpace(request.Fullname))

	passwordHash, err := a.hasher.Hash(ctx, request.Password)
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	username, err := a.allocator.Allocate(ctx, email)
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	account := models.Account{
		ID:              a.ids.Generate(),
		Email:           email,
		PasswordHash:    passwordHash,
		Username:        username,
		Fullname:        fullname,
		ProfileImageURL: DefaultAvatarURL(fullname),
		IsAdmin:         a.isAdminEmail(email),
	}

	created, err := a.accounts.Insert(ctx, account)
	if err != nil {
		log.Err(err).Str("email", email).Msg("account creation ended with error")
		return models.Account{}, models.Token{}, err
	}

	token, err := a.tokens.Issue(ctx, created)
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	return created, token, nil
}

// Login authenticates an existing local-credential account.
//
// Returns:
//   - ErrEmailNotFound if no account matches the email.
//   - ErrFederatedAccount (wrapped, naming the linked providers) if the
//     account has no password credential.
//   - ErrWrongPassword on digest mismatch.
func (a *accountService) Login(ctx context.Context, request models.LoginRequest) (models.Account, models.Token, error) {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.Account{}, models.Token{}, err
	}

	email := strings.ToLower(strings.TrimSpace(request.Email))

	account, err := a.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			return models.Account{}, models.Token{}, ErrEmailNotFound
		}
		log.Err(err).Str("email", email).Msg("account search by email failed")
		return models.Account{}, models.Token{}, fmt.Errorf("account search by email failed: %w", err)
	}

	if !account.HasPassword() {
		return models.Account{}, models.Token{}, fmt.Errorf(
			"%w: try logging in with %s", ErrFederatedAccount, strings.Join(account.LinkedProviders(), " or "))
	}

	if !a.hasher.Verify(ctx, request.Password, account.PasswordHash) {
		log.Warn().Str("id", account.ID).Msg("wrong password")
		return models.Account{}, models.Token{}, ErrWrongPassword
	}

	token, err := a.tokens.Issue(ctx, account)
	if err != nil {
		return models.Account{}, models.Token{}, err
	}

	return account, token, nil
}

// GetProfile returns the public profile subset of the account holding the
// given username. No authentication is required.
func (a *accountService) GetProfile(ctx context.Context, username string) (models.PublicProfile, error) {
	account, err := a.accounts.FindByUsername(ctx, strings.ToLower(username))
	if err != nil {
		return models.PublicProfile{}, err
	}

	return account.Public(), nil
}

// UpdateProfile applies a partial profile update on behalf of actor.
//
// The ownership check runs before any repository access: a mismatched
// actor gets ErrForbidden whether or not the target exists. Only
// username, bio and social links are updatable.
func (a *accountService) UpdateProfile(ctx context.Context, actor utils.Session, targetID string, request models.ProfileUpdateRequest) (models.PublicProfile, error) {
	log := logger.FromContext(ctx)

	if actor.AccountID != targetID {
		log.Warn().Str("actor", actor.AccountID).Str("target", targetID).Msg("profile edit ownership mismatch")
		return models.PublicProfile{}, ErrForbidden
	}

	if err := a.validator.Validate(ctx, request); err != nil {
		return models.PublicProfile{}, err
	}

	update := models.AccountUpdate{
		Bio:         request.Bio,
		SocialLinks: request.SocialLinks,
	}
	if request.Username != nil {
		lowered := strings.ToLower(*request.Username)
		update.Username = &lowered
	}

	updated, err := a.accounts.UpdateFields(ctx, targetID, update)
	if err != nil {
		log.Err(err).Str("id", targetID).Msg("profile update ended with error")
		return models.PublicProfile{}, err
	}

	return updated.Public(), nil
}

// ChangePassword rotates the account password on behalf of actor.
//
// Both plaintexts must independently satisfy the password policy before
// any lookup. Federation-only accounts are rejected; the current password
// must verify against the stored digest. Replaying the call with the
// already-rotated password as current fails.
func (a *accountService) ChangePassword(ctx context.Context, actor utils.Session, targetID string, request models.ChangePasswordRequest) error {
	log := logger.FromContext(ctx)

	if actor.AccountID != targetID {
		log.Warn().Str("actor", actor.AccountID).Str("target", targetID).Msg("password change ownership mismatch")
		return ErrForbidden
	}

	if err := a.validator.Validate(ctx, request); err != nil {
		return err
	}

	account, err := a.accounts.FindByID(ctx, targetID)
	if err != nil {
		return err
	}

	if !account.HasPassword() {
		return fmt.Errorf(
			"%w: try logging in with %s", ErrFederatedAccount, strings.Join(account.LinkedProviders(), " or "))
	}

	if !a.hasher.Verify(ctx, request.CurrentPassword, account.PasswordHash) {
		return ErrWrongPassword
	}

	newHash, err := a.hasher.Hash(ctx, request.NewPassword)
	if err != nil {
		return err
	}

	if err := a.accounts.UpdatePasswordHash(ctx, targetID, newHash); err != nil {
		log.Err(err).Str("id", targetID).Msg("password hash update ended with error")
		return err
	}

	return nil
}

// Delete removes the account on behalf of actor. The ownership check runs
// first; deletion does not cascade to content owned by the account.
func (a *accountService) Delete(ctx context.Context, actor utils.Session, targetID string) error {
	log := logger.FromContext(ctx)

	if actor.AccountID != targetID {
		log.Warn().Str("actor", actor.AccountID).Str("target", targetID).Msg("account deletion ownership mismatch")
		return ErrForbidden
	}

	if err := a.accounts.DeleteByID(ctx, targetID); err != nil {
		log.Err(err).Str("id", targetID).Msg("account deletion ended with error")
		return err
	}

	return nil
}

func (a *accountService) isAdminEmail(email string) bool {
	_, ok := a.adminEmails[email]
	return ok
}

// DefaultAvatarURL builds the deterministic stock avatar for a display
// name.
func DefaultAvatarURL(fullname string) string {
	name := strings.ReplaceAll(fullname, " ", "+")
	return "https://ui-avatars.com/api/?name=" + name + "&background=random&size=384"
}
