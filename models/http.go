package models

// SignupRequest is the body of POST /accounts.
type SignupRequest struct {
	// Fullname is the display name, at least 3 characters.
	Fullname string `json:"fullname"`

	// Email is the account email. Normalized to lowercase server-side.
	Email string `json:"email"`

	// Password must satisfy the password policy (6-20 characters with at
	// least one digit, one lowercase and one uppercase letter).
	Password string `json:"password"`
}

// LoginRequest is the body of POST /accounts/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// FederationRequest is the body of POST /federation/{provider}.
type FederationRequest struct {
	// Assertion is the provider-issued identity assertion (ID token or
	// access token) to be verified with the provider before any account
	// is touched.
	Assertion string `json:"assertion"`
}

// ProfileUpdateRequest is the body of PUT /accounts/{id}.
// Only non-nil fields are applied (partial update support). Email,
// password, admin flag and counters are not editable through this request.
type ProfileUpdateRequest struct {
	// Username replaces the account handle. Must be unique, lowercase,
	// at least 3 characters. If nil, the field will not be updated.
	Username *string `json:"username,omitempty"`

	// Bio replaces the profile description, at most 200 characters.
	// If nil, the field will not be updated.
	Bio *string `json:"bio,omitempty"`

	// SocialLinks replaces the full social link set.
	// If nil, the field will not be updated.
	SocialLinks *SocialLinks `json:"social_links,omitempty"`
}

// ChangePasswordRequest is the body of POST /accounts/{id}.
// Both values must independently satisfy the password policy.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
