package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/store"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
)

// usernameMinLength is the shortest handle the allocator will hand out
// without a disambiguating suffix.
const usernameMinLength = 3

// usernameAllocator derives handles from email local-parts and checks
// them against the account store.
type usernameAllocator struct {
	accounts store.AccountRepository
	logger   *logger.Logger
}

// NewUsernameAllocator constructs a [UsernameAllocator] backed by the
// given repository.
func NewUsernameAllocator(accounts store.AccountRepository, logger *logger.Logger) UsernameAllocator {
	return &usernameAllocator{
		accounts: accounts,
		logger:   logger,
	}
}

// Allocate implements [UsernameAllocator].
//
// The candidate is the lowercase local-part of the email. When the
// candidate is taken or shorter than the minimum handle length, a random
// suffix is appended. The suffixed candidate is not re-checked for
// collision; the unique constraint on the store remains the final
// arbiter, and the collision probability over a five-character alphabet
// is accepted.
func (u *usernameAllocator) Allocate(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	local, _, found := strings.Cut(email, "@")
	if !found || local == "" {
		log.Error().Str("email", email).Msg("cannot derive username from email")
		return "", ErrInvalidDataProvided
	}
	candidate := strings.ToLower(local)

	needsSuffix := utf8.RuneCountInString(candidate) < usernameMinLength
	if !needsSuffix {
		exists, err := u.accounts.ExistsByUsername(ctx, candidate)
		if err != nil {
			log.Err(err).Str("candidate", candidate).Msg("username existence check failed")
			return "", fmt.Errorf("username existence check failed: %w", err)
		}
		needsSuffix = exists
	}

	if needsSuffix {
		suffix, err := utils.GenerateSuffix()
		if err != nil {
			return "", fmt.Errorf("username suffix generation failed: %w", err)
		}
		candidate += suffix
	}

	return candidate, nil
}
