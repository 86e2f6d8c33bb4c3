package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")

	// Login failures. Email-not-found and wrong-password are deliberately
	// distinguishable in responses.
	ErrEmailNotFound    = errors.New("Email not found")
	ErrWrongPassword    = errors.New("Incorrect password")
	ErrFederatedAccount = errors.New("Account was created using an external provider")

	// ErrProviderMismatch is returned when a federation login targets an
	// email whose account was not set up with that provider.
	ErrProviderMismatch = errors.New("this email was signed up without this provider")

	// ErrUnknownProvider rejects federation requests naming a provider
	// outside the supported set.
	ErrUnknownProvider = errors.New("unknown federation provider")

	// ErrUpstreamVerification wraps assertion verification failures from
	// the identity provider.
	ErrUpstreamVerification = errors.New("failed to verify identity with the provider")

	// ErrForbidden is the uniform ownership-mismatch outcome. It carries
	// no detail about whether the target account exists.
	ErrForbidden = errors.New("forbidden")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")

	ErrHashingFailed = errors.New("credential hashing failed")
)
