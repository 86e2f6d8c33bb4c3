package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher implements CredentialHasher on top of bcrypt with a
// configurable work factor.
type bcryptHasher struct {
	cost   int
	logger *logger.Logger
}

// NewCredentialHasher constructs a bcrypt-backed [CredentialHasher] with
// the work factor from cfg.BcryptCost.
func NewCredentialHasher(cfg config.App, logger *logger.Logger) CredentialHasher {
	return &bcryptHasher{
		cost:   cfg.BcryptCost,
		logger: logger,
	}
}

// Hash implements [CredentialHasher]. The plaintext never reaches the log
// output, only the failure itself does.
func (h *bcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	log := logger.FromContext(ctx)

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		log.Err(err).Msg("bcrypt hashing failed")
		return "", fmt.Errorf("%w: %w", ErrHashingFailed, err)
	}

	return string(digest), nil
}

// Verify implements [CredentialHasher]. Mismatch is reported as false;
// only the comparison outcome leaves this boundary.
func (h *bcryptHasher) Verify(ctx context.Context, plaintext string, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
