package models

import (
	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the claim set carried by every session token: the
// standard registered claims plus the account's admin flag.
type SessionClaims struct {
	jwt.RegisteredClaims

	// Admin mirrors the account's IsAdmin flag at issue time.
	Admin bool `json:"admin"`
}

// Token wraps a JWT session token with convenience accessors for
// authentication flows.
//
// It embeds [jwt.Token] for low-level token operations (signing, parsing)
// and [SessionClaims] for claim access.
//
// SignedString holds the compact serialized form of the token
// (header.payload.signature) ready to be transmitted in HTTP headers.
//
// AccountID and Admin are cached, parsed copies of the "sub" and "admin"
// claims, populated during generation or validation so that callers do not
// re-parse the claim set.
type Token struct {
	// Token is the underlying JWT token used for signing and claim
	// inspection. Excluded from JSON serialization because only the
	// compact string form is meaningful outside the server process.
	*jwt.Token `json:"-"`

	// SessionClaims provides access to the token's claim set.
	SessionClaims

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`

	// AccountID is the account identifier extracted from the "sub" claim.
	AccountID string `json:"-"`
}

// GetAccountID extracts the account identifier from the token's "sub"
// (subject) claim.
//
// Returns an error if the subject claim is missing or empty.
func (t *Token) GetAccountID() (string, error) {
	accountID, err := t.GetSubject()
	if err != nil {
		return "", err
	}
	if accountID == "" {
		return "", jwt.ErrTokenRequiredClaimMissing
	}

	return accountID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *Token) String() string {
	return t.SignedString
}
