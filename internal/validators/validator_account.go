package validators

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/MKhiriev/go-blog-identity/models"
)

// Field name constants used to specify which fields should be validated.
// These constants are passed to Validate to restrict validation to a
// subset of fields (field-level scoping).
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldFullname        = "fullname"
	FieldUsername        = "username"
	FieldBio             = "bio"
	FieldSocialLinks     = "social_links"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAssertion       = "assertion"
)

const (
	usernameMinLength = 3
	fullnameMinLength = 3
	bioMaxLength      = 200

	passwordMinLength = 6
	passwordMaxLength = 20
)

var emailRegex = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// AccountValidator implements the Validator interface for all
// account-related request models: SignupRequest, LoginRequest,
// ProfileUpdateRequest, ChangePasswordRequest, and FederationRequest.
type AccountValidator struct {
}

func NewAccountValidator() Validator {
	return &AccountValidator{}
}

func (v *AccountValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.SignupRequest:
		return v.validateSignupRequest(ctx, value, fields...)
	case *models.SignupRequest:
		return v.validateSignupRequest(ctx, *value, fields...)

	case models.LoginRequest:
		return v.validateLoginRequest(ctx, value, fields...)
	case *models.LoginRequest:
		return v.validateLoginRequest(ctx, *value, fields...)

	case models.ProfileUpdateRequest:
		return v.validateProfileUpdateRequest(ctx, value, fields...)
	case *models.ProfileUpdateRequest:
		return v.validateProfileUpdateRequest(ctx, *value, fields...)

	case models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, value, fields...)
	case *models.ChangePasswordRequest:
		return v.validateChangePasswordRequest(ctx, *value, fields...)

	case models.FederationRequest:
		return v.validateFederationRequest(ctx, value, fields...)
	case *models.FederationRequest:
		return v.validateFederationRequest(ctx, *value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// isValidPassword reports whether the password satisfies the credential
// policy: 6 to 20 characters with at least one digit, one lowercase and
// one uppercase letter.
func isValidPassword(password string) bool {
	length := utf8.RuneCountInString(password)
	if length < passwordMinLength || length > passwordMaxLength {
		return false
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	return hasDigit && hasLower && hasUpper
}

// isValidSocialLink reports whether the link is a full http(s) URL whose
// host matches the platform, e.g. a youtube link must point at
// youtube.com. The website platform accepts any host.
func isValidSocialLink(platform, link string) error {
	parsed, err := url.Parse(link)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return ErrInvalidSocialLink
	}

	if platform != models.SocialWebsite && !strings.Contains(parsed.Hostname(), platform+".com") {
		return ErrWrongSocialHost
	}

	return nil
}

func (v *AccountValidator) validateSignupRequest(_ context.Context, request models.SignupRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldFullname, FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldFullname:
			if utf8.RuneCountInString(strings.TrimSpace(request.Fullname)) < fullnameMinLength {
				return ErrFullnameTooShort
			}
		case FieldEmail:
			if request.Email == "" {
				return ErrEmptyEmail
			}
			if !emailRegex.MatchString(request.Email) {
				return ErrInvalidEmail
			}
		case FieldPassword:
			if !isValidPassword(request.Password) {
				return ErrInvalidPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateLoginRequest(_ context.Context, request models.LoginRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldEmail, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldEmail:
			// Login only checks presence. Format is not re-validated here:
			// an unknown email is reported by the account lookup.
			if request.Email == "" {
				return ErrEmptyEmail
			}
		case FieldPassword:
			if request.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateProfileUpdateRequest(_ context.Context, request models.ProfileUpdateRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldBio, FieldSocialLinks}
	}

	if request.Username == nil && request.Bio == nil && request.SocialLinks == nil {
		return ErrNoFieldsToUpdate
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if request.Username != nil && utf8.RuneCountInString(*request.Username) < usernameMinLength {
				return ErrUsernameTooShort
			}
		case FieldBio:
			if request.Bio != nil && utf8.RuneCountInString(*request.Bio) > bioMaxLength {
				return ErrBioTooLong
			}
		case FieldSocialLinks:
			if request.SocialLinks == nil {
				continue
			}
			links := map[string]string{
				models.SocialYoutube:   request.SocialLinks.Youtube,
				models.SocialInstagram: request.SocialLinks.Instagram,
				models.SocialFacebook:  request.SocialLinks.Facebook,
				models.SocialTwitter:   request.SocialLinks.Twitter,
				models.SocialGithub:    request.SocialLinks.Github,
				models.SocialWebsite:   request.SocialLinks.Website,
			}
			for _, platform := range models.SocialLinkProviders {
				link := links[platform]
				if link == "" {
					continue
				}
				if err := isValidSocialLink(platform, link); err != nil {
					return err
				}
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateChangePasswordRequest(_ context.Context, request models.ChangePasswordRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldCurrentPassword, FieldNewPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldCurrentPassword:
			if !isValidPassword(request.CurrentPassword) {
				return ErrInvalidPassword
			}
		case FieldNewPassword:
			if !isValidPassword(request.NewPassword) {
				return ErrInvalidPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *AccountValidator) validateFederationRequest(_ context.Context, request models.FederationRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldAssertion}
	}

	for _, f := range fields {
		switch f {
		case FieldAssertion:
			if strings.TrimSpace(request.Assertion) == "" {
				return ErrEmptyAssertion
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}
