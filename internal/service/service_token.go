package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/models"
)

// tokenService is the concrete implementation of TokenService. It signs
// session tokens with a server-held HMAC secret.
type tokenService struct {
	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	// Tokens whose issuer does not match this value are rejected during parsing.
	tokenIssuer string

	// tokenDuration controls how long a newly issued JWT remains valid.
	// Zero disables the expiry claim entirely, producing long-lived
	// bearer tokens.
	tokenDuration time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a [TokenService] populated with the token
// parameters from cfg.
//
// The returned service is safe for concurrent use; all state is read-only
// after construction.
func NewTokenService(cfg config.App, logger *logger.Logger) TokenService {
	return &tokenService{
		tokenSignKey:  cfg.TokenSignKey,
		tokenIssuer:   cfg.TokenIssuer,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Issue produces a signed JWT for the given account.
//
// The token is signed with the configured tokenSignKey, carries the
// configured tokenIssuer as the "iss" claim, the account id as the
// subject and the admin flag as a custom claim. It expires after
// tokenDuration unless the duration is zero.
func (t *tokenService) Issue(ctx context.Context, account models.Account) (models.Token, error) {
	token, err := utils.GenerateJWTToken(t.tokenIssuer, account.ID, account.IsAdmin, t.tokenDuration, t.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Parse validates and parses a raw JWT string.
//
// It delegates to utils.ValidateAndParseJWTToken, verifying the signature
// and the issuer claim. Any validation failure (expired, wrong issuer,
// malformed) is normalised to ErrTokenIsExpiredOrInvalid so that callers
// do not need to inspect low-level JWT errors.
func (t *tokenService) Parse(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, t.tokenSignKey, t.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	return token, nil
}
