package adapter

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-blog-identity/internal/config"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/utils"
	"github.com/MKhiriev/go-blog-identity/models"
)

// googleVerifier validates Google ID tokens against the tokeninfo
// endpoint. The endpoint decodes and checks the token signature, expiry
// and audience on Google's side, so the adapter only needs to read the
// attested claims out of the response.
type googleVerifier struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// googleTokenInfo is the subset of the tokeninfo response this subsystem
// reads. Google reports boolean claims as strings.
type googleTokenInfo struct {
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// NewGoogleVerifier constructs an [IdentityVerifier] for Google ID tokens.
// The tokeninfo URL and request timeout come from the federation config.
func NewGoogleVerifier(cfg config.Federation, logger *logger.Logger) IdentityVerifier {
	client := utils.NewHTTPClient()
	client.
		SetBaseURL(cfg.GoogleTokenInfoURL).
		SetTimeout(cfg.RequestTimeout)

	return &googleVerifier{client: client, logger: logger}
}

func (g *googleVerifier) Provider() string {
	return models.ProviderGoogle
}

// Verify implements [IdentityVerifier]. It sends the ID token to the
// tokeninfo endpoint and maps the attested claims onto an
// [models.ExternalIdentity]. Tokens whose email is absent or unverified
// are rejected.
func (g *googleVerifier) Verify(ctx context.Context, assertion string) (models.ExternalIdentity, error) {
	var info googleTokenInfo

	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParam("id_token", assertion).
		SetResult(&info).
		Get("")
	if err != nil {
		return models.ExternalIdentity{}, fmt.Errorf("%w: google tokeninfo request: %w", ErrProviderUnavailable, err)
	}
	if err = mapProviderError(resp); err != nil {
		return models.ExternalIdentity{}, err
	}

	if info.Email == "" {
		return models.ExternalIdentity{}, fmt.Errorf("%w: google token has no email claim", ErrIncompleteIdentity)
	}
	if info.EmailVerified != "true" {
		return models.ExternalIdentity{}, fmt.Errorf("%w: %s", ErrEmailNotVerified, info.Email)
	}

	return models.ExternalIdentity{
		Email:     info.Email,
		Name:      info.Name,
		AvatarURL: info.Picture,
	}, nil
}

// facebookVerifier validates Facebook access tokens by asking the Graph
// API for the profile the token grants access to. A token the Graph API
// accepts is by definition a live token for that profile.
type facebookVerifier struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

type facebookProfile struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	} `json:"picture"`
}

// NewFacebookVerifier constructs an [IdentityVerifier] for Facebook
// access tokens backed by the Graph API.
func NewFacebookVerifier(cfg config.Federation, logger *logger.Logger) IdentityVerifier {
	client := utils.NewHTTPClient()
	client.
		SetBaseURL(cfg.FacebookGraphURL).
		SetTimeout(cfg.RequestTimeout)

	return &facebookVerifier{client: client, logger: logger}
}

func (f *facebookVerifier) Provider() string {
	return models.ProviderFacebook
}

// Verify implements [IdentityVerifier]. It fetches the token owner's
// profile from GET /me. Facebook only returns an email when the account
// has a confirmed one, so an empty email rejects the assertion.
func (f *facebookVerifier) Verify(ctx context.Context, assertion string) (models.ExternalIdentity, error) {
	var profile facebookProfile

	resp, err := f.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"fields":       "id,name,email,picture.width(384).height(384)",
			"access_token": assertion,
		}).
		SetResult(&profile).
		Get("/me")
	if err != nil {
		return models.ExternalIdentity{}, fmt.Errorf("%w: facebook graph request: %w", ErrProviderUnavailable, err)
	}
	if err = mapProviderError(resp); err != nil {
		return models.ExternalIdentity{}, err
	}

	if profile.Email == "" {
		return models.ExternalIdentity{}, fmt.Errorf("%w: facebook profile has no email", ErrIncompleteIdentity)
	}

	return models.ExternalIdentity{
		Email:     profile.Email,
		Name:      profile.Name,
		AvatarURL: profile.Picture.Data.URL,
	}, nil
}
