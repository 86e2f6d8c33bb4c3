package adapter

import "errors"

var (
	ErrAssertionRejected   = errors.New("provider rejected the assertion")
	ErrProviderUnavailable = errors.New("provider unavailable")
	ErrIncompleteIdentity  = errors.New("provider returned incomplete identity")
	ErrEmailNotVerified    = errors.New("provider email is not verified")
)
