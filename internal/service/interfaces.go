package service

import (
	"context"

	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/services_mock.go -package=mock

// CredentialHasher produces and checks one-way password digests.
type CredentialHasher interface {
	// Hash returns the digest of plaintext. A hashing failure is a server
	// error, never a validation outcome.
	Hash(ctx context.Context, plaintext string) (string, error)

	// Verify reports whether plaintext matches digest. Mismatch is a
	// normal false, not an error.
	Verify(ctx context.Context, plaintext string, digest string) bool
}

// TokenService issues and verifies signed session tokens.
type TokenService interface {
	// Issue produces a signed token carrying the account id as subject
	// and the admin flag as a claim.
	Issue(ctx context.Context, account models.Account) (models.Token, error)

	// Parse validates a raw token string and returns the decoded token.
	// Any validation failure is normalised to ErrTokenIsExpiredOrInvalid.
	Parse(ctx context.Context, tokenString string) (models.Token, error)
}

// UsernameAllocator derives unique handles from email addresses.
type UsernameAllocator interface {
	// Allocate returns a handle derived from the local-part of email,
	// disambiguated with a random suffix when the plain candidate is
	// taken or too short. Pure allocation; nothing is reserved in the
	// repository.
	Allocate(ctx context.Context, email string) (string, error)
}

// AccountService orchestrates local account lifecycle: signup, login,
// profile reads and the owner-only mutations.
type AccountService interface {
	Signup(ctx context.Context, request models.SignupRequest) (models.Account, models.Token, error)
	Login(ctx context.Context, request models.LoginRequest) (models.Account, models.Token, error)
	GetProfile(ctx context.Context, username string) (models.PublicProfile, error)

	// UpdateProfile, ChangePassword and Delete enforce the ownership
	// policy: actor.AccountID must equal targetID or the call fails with
	// ErrForbidden before any repository access.
	UpdateProfile(ctx context.Context, actor utils.Session, targetID string, request models.ProfileUpdateRequest) (models.PublicProfile, error)
	ChangePassword(ctx context.Context, actor utils.Session, targetID string, request models.ChangePasswordRequest) error
	Delete(ctx context.Context, actor utils.Session, targetID string) error
}

// FederationService authenticates accounts through external identity
// providers.
type FederationService interface {
	// Authenticate verifies the assertion with the named provider, then
	// logs into the matching account or provisions a new one.
	Authenticate(ctx context.Context, provider string, request models.FederationRequest) (models.Account, models.Token, error)
}
