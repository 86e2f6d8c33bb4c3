package store

import (
	"context"

	"github.com/MKhiriev/go-blog-identity/models"
)

// AccountRepository is the identity repository contract consumed by the
// service layer. Uniqueness of email and username is enforced by the store
// itself (unique constraints) and surfaced as the sentinel errors
// [ErrEmailAlreadyExists] and [ErrUsernameAlreadyTaken], so callers never
// need check-then-act sequences.
type AccountRepository interface {
	// Insert persists a new account and returns it with server-assigned
	// fields (CreatedAt) populated.
	Insert(ctx context.Context, account models.Account) (models.Account, error)

	// FindByEmail returns the account with the given (lowercase) email or
	// ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (models.Account, error)

	// FindByUsername returns the account with the given username or
	// ErrAccountNotFound.
	FindByUsername(ctx context.Context, username string) (models.Account, error)

	// FindByID returns the account with the given id or ErrAccountNotFound.
	FindByID(ctx context.Context, id string) (models.Account, error)

	// ExistsByUsername reports whether any account holds the username.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// UpdateFields applies a partial update and returns the updated
	// account, ErrAccountNotFound, or a uniqueness sentinel.
	UpdateFields(ctx context.Context, id string, update models.AccountUpdate) (models.Account, error)

	// UpdatePasswordHash replaces the stored credential digest.
	UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error

	// LinkProvider sets the named federation provider flag on the account.
	LinkProvider(ctx context.Context, id string, provider string) error

	// DeleteByID removes the account, returning ErrAccountNotFound when no
	// row matched.
	DeleteByID(ctx context.Context, id string) error
}
