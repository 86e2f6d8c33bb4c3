// SPDX-License-Identifier: Apache-2.0

package config

import "time"

// Fallback values applied by applyDefaults for settings that were not
// provided by any configuration source.
const (
	DefaultHTTPAddress    = ":8080"
	DefaultRequestTimeout = 30 * time.Second
	DefaultTokenIssuer    = "go-blog-identity"
	DefaultBcryptCost     = 10

	DefaultGoogleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"
	DefaultFacebookGraphURL   = "https://graph.facebook.com"
	DefaultProviderTimeout    = 10 * time.Second

	DefaultStandardWindow = 15 * time.Minute
	DefaultCreationWindow = 30 * time.Minute
	DefaultMutationWindow = 15 * time.Minute
	DefaultDeletionWindow = 30 * time.Minute
	DefaultWindowCap      = 100
)

// applyDefaults fills in fallback values for settings no source provided.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = DefaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = DefaultTokenIssuer
	}
	if cfg.App.BcryptCost < DefaultBcryptCost {
		cfg.App.BcryptCost = DefaultBcryptCost
	}

	if cfg.Federation.GoogleTokenInfoURL == "" {
		cfg.Federation.GoogleTokenInfoURL = DefaultGoogleTokenInfoURL
	}
	if cfg.Federation.FacebookGraphURL == "" {
		cfg.Federation.FacebookGraphURL = DefaultFacebookGraphURL
	}
	if cfg.Federation.RequestTimeout == 0 {
		cfg.Federation.RequestTimeout = DefaultProviderTimeout
	}

	applyWindowDefaults(&cfg.RateLimit.Standard, DefaultStandardWindow)
	applyWindowDefaults(&cfg.RateLimit.Creation, DefaultCreationWindow)
	applyWindowDefaults(&cfg.RateLimit.Mutation, DefaultMutationWindow)
	applyWindowDefaults(&cfg.RateLimit.Deletion, DefaultDeletionWindow)
}

func applyWindowDefaults(w *Window, window time.Duration) {
	if w.Window == 0 {
		w.Window = window
	}
	if w.Cap == 0 {
		w.Cap = DefaultWindowCap
	}
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or a sentinel error otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return ErrInvalidAppConfigs
	}
	if cfg.App.BcryptCost < DefaultBcryptCost || cfg.App.BcryptCost > 31 {
		return ErrInvalidAppConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.RateLimit.Standard.Window < 0 || cfg.RateLimit.Standard.Cap < 0 ||
		cfg.RateLimit.Creation.Window < 0 || cfg.RateLimit.Creation.Cap < 0 ||
		cfg.RateLimit.Mutation.Window < 0 || cfg.RateLimit.Mutation.Cap < 0 ||
		cfg.RateLimit.Deletion.Window < 0 || cfg.RateLimit.Deletion.Cap < 0 {
		return ErrInvalidRateLimitConfigs
	}

	return nil
}
