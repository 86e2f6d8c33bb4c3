package models

// SessionResponse is the success payload of signup, login and federation
// endpoints: freshly issued session material plus the public fragment of the
// account. The password hash never appears here.
type SessionResponse struct {
	// AccessToken is the signed bearer token to be presented in the
	// Authorization header on subsequent requests.
	AccessToken string `json:"access_token"`

	ProfileImageURL string `json:"profile_img"`
	Username        string `json:"username"`
	Fullname        string `json:"fullname"`
	IsAdmin         bool   `json:"is_admin"`
}

// NewSessionResponse builds the session payload for an account and its
// issued token.
func NewSessionResponse(account Account, token Token) SessionResponse {
	return SessionResponse{
		AccessToken:     token.SignedString,
		ProfileImageURL: account.ProfileImageURL,
		Username:        account.Username,
		Fullname:        account.Fullname,
		IsAdmin:         account.IsAdmin,
	}
}

// ErrorResponse is the uniform error envelope returned by every endpoint.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries a stable machine-checkable kind plus a human-readable
// message. Server-class errors always use a generic message so that store
// or crypto internals never leak to callers.
type ErrorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// MessageResponse is the confirmation payload of mutating endpoints that
// return no entity (password change, account deletion).
type MessageResponse struct {
	Message string `json:"message"`
}
