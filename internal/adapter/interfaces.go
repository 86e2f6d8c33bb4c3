// Package adapter provides transport-layer abstractions for verifying
// identity assertions with federation providers.
//
// The primary abstraction is [IdentityVerifier], which decouples the
// federation service from provider HTTP APIs. The package ships two
// implementations: [NewGoogleVerifier] (Google tokeninfo endpoint) and
// [NewFacebookVerifier] (Facebook Graph API).
//
// Error values defined in errors.go are mapped from provider responses by
// mapProviderError so that callers can use [errors.Is] for
// provider-agnostic error handling (e.g. [ErrAssertionRejected] when the
// provider declines the assertion).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-blog-identity/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_verifier_mock.go -package=mock

// IdentityVerifier verifies a provider-issued identity assertion and
// returns the identity attributes it attests to. Implementations must not
// trust any attribute from the assertion itself; everything returned comes
// from the provider's verification endpoint.
type IdentityVerifier interface {
	// Provider returns the federation provider name this verifier talks
	// to, e.g. "google".
	Provider() string

	// Verify checks the assertion with the provider. On success it
	// returns the verified identity triple (email, display name, avatar
	// URL). Returns [ErrAssertionRejected] (wrapped) when the provider
	// declines the assertion and [ErrProviderUnavailable] (wrapped) when
	// the provider cannot be reached.
	Verify(ctx context.Context, assertion string) (models.ExternalIdentity, error)
}
