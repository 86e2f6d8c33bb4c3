package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyEmail        = errors.New("Enter Email")
	ErrEmptyPassword     = errors.New("Enter the password")
	ErrInvalidEmail      = errors.New("Email is Invalid")
	ErrInvalidPassword   = errors.New("Password should be 6 to 20 characters long with a numeric, 1 lowercase and 1 uppercase letters")
	ErrFullnameTooShort  = errors.New("Fullname must be at least 3 letters long")
	ErrUsernameTooShort  = errors.New("Username must be at least 3 letters long")
	ErrBioTooLong        = errors.New("Bio should not be more than 200 characters")
	ErrInvalidSocialLink = errors.New("social link must be a full http(s) URL")
	ErrWrongSocialHost   = errors.New("social link host does not match the platform")
	ErrEmptyAssertion    = errors.New("assertion is required")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
)
