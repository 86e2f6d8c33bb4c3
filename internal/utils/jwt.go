package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-blog-identity/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWTToken creates a signed HMAC-SHA256 session token for an account.
//
// The token includes the following claims:
//   - Issuer    (iss): identifies the service that issued the token
//   - Subject   (sub): the account ID
//   - IssuedAt  (iat): the current time
//   - ExpiresAt (exp): only when tokenDuration > 0; a zero duration issues
//     a long-lived token without an expiry claim
//   - admin: the account's admin flag at issue time
//
// Issuer and signKey are required. Returns an error if either is empty or
// the account ID is empty.
//
// Parameters:
//
//	issuer        - identifier of the token issuer (e.g. service name)
//	accountID     - ID of the account the token is issued for
//	admin         - whether the account holds the admin role
//	tokenDuration - how long the token remains valid; 0 means no expiry
//	signKey       - secret key used to sign the token with HMAC-SHA256
//
// Returns:
//
//	models.Token - contains the signed token string and the jwt.Token object
//	error        - non-nil if parameters are invalid or signing fails
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("blog-identity", accountID, false, 0, "secret")
func GenerateJWTToken(issuer, accountID string, admin bool, tokenDuration time.Duration, signKey string) (models.Token, error) {
	if issuer == "" || accountID == "" || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	now := time.Now()
	claims := &models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:   issuer,
			Subject:  accountID,
			IssuedAt: jwt.NewNumericDate(now),
		},
		Admin: admin,
	}
	if tokenDuration > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(tokenDuration))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Token:         token,
		SessionClaims: *claims,
		SignedString:  tokenString,
		AccountID:     accountID,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts
// its claims.
//
// Validation includes:
//   - Signature verification using the provided sign key, restricted to the
//     HMAC family so that an attacker cannot downgrade the algorithm
//   - Issuer (iss) claim check against the provided tokenIssuer
//   - Expiration (exp) claim check when the claim is present
//   - Subject (sub) claim presence
//
// Parameters:
//
//	tokenString   - the raw signed JWT string to validate and parse
//	tokenSignKey  - secret key used to verify the token signature
//	tokenIssuer   - expected issuer value to validate against the iss claim
//
// Returns:
//
//	models.Token - contains the parsed jwt.Token object, the extracted
//	               AccountID and the admin claim
//	error        - non-nil if validation fails or required claims are missing
func ValidateAndParseJWTToken(tokenString, tokenSignKey, tokenIssuer string) (models.Token, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	accountID, err := token.Claims.GetSubject()
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if accountID == "" {
		return models.Token{}, errors.New("empty subject error")
	}

	return models.Token{
		Token:         token,
		SessionClaims: *claims,
		SignedString:  tokenString,
		AccountID:     accountID,
	}, nil
}
