package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Social link provider names accepted in Account.SocialLinks. The set is
// fixed; the store and validators reject anything outside it.
const (
	SocialYoutube   = "youtube"
	SocialInstagram = "instagram"
	SocialFacebook  = "facebook"
	SocialTwitter   = "twitter"
	SocialGithub    = "github"
	SocialWebsite   = "website"
)

// SocialLinkProviders lists every accepted social link key in a stable order.
var SocialLinkProviders = []string{
	SocialYoutube,
	SocialInstagram,
	SocialFacebook,
	SocialTwitter,
	SocialGithub,
	SocialWebsite,
}

// Federation provider names accepted by the federation gateway.
const (
	ProviderGoogle   = "google"
	ProviderFacebook = "facebook"
)

// Account represents a platform account used for authentication and
// authorization. It is the only entity owned by this subsystem.
// Sensitive fields must never be exposed outside trusted boundaries.
type Account struct {
	// ID is the stable unique identifier of the account, assigned at
	// creation and immutable afterwards.
	ID string `json:"id"`

	// Email is the unique, lowercase-normalized account email.
	// Immutable after creation: profile edits never touch it.
	Email string `json:"email"`

	// PasswordHash is the bcrypt digest of the account password.
	// Empty for federation-only accounts. Never serialized.
	PasswordHash string `json:"-"`

	// Username is the unique, lowercase handle, mutable by the owner.
	Username string `json:"username"`

	// Fullname is the display name, stored lowercase, length >= 3.
	Fullname string `json:"fullname"`

	// Bio is a short free-form description, at most 200 characters.
	Bio string `json:"bio"`

	// ProfileImageURL points at the account avatar. Defaults to a
	// generated stock image derived from the fullname.
	ProfileImageURL string `json:"profile_img"`

	// SocialLinks maps the fixed provider set to URL strings.
	SocialLinks SocialLinks `json:"social_links"`

	// IsAdmin is derived server-side from the admin-email allow-list at
	// creation time. Never settable by clients.
	IsAdmin bool `json:"-"`

	// GoogleLinked and FacebookLinked record which federation providers
	// are bound to this account. An account with no password hash must
	// have at least one of them set.
	GoogleLinked   bool `json:"-"`
	FacebookLinked bool `json:"-"`

	// TotalPosts and TotalReads are counters owned by the content
	// subsystem. This subsystem reads them for public profiles and never
	// writes them.
	TotalPosts int64 `json:"total_posts"`
	TotalReads int64 `json:"total_reads"`

	// CreatedAt is set once by the database at insert time.
	CreatedAt time.Time `json:"created_at"`
}

// SocialLinks holds the fixed set of social profile URLs. Absent links are
// empty strings.
type SocialLinks struct {
	Youtube   string `json:"youtube"`
	Instagram string `json:"instagram"`
	Facebook  string `json:"facebook"`
	Twitter   string `json:"twitter"`
	Github    string `json:"github"`
	Website   string `json:"website"`
}

// Value serializes the link set to JSON for storage in a JSONB column.
// Implements [driver.Valuer].
func (s SocialLinks) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan deserializes a JSONB column value into the link set.
// Implements [sql.Scanner].
func (s *SocialLinks) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s = SocialLinks{}
		return nil
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into SocialLinks", src)
	}
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}

// HasPassword reports whether the account can authenticate with a local
// password credential.
func (a Account) HasPassword() bool {
	return a.PasswordHash != ""
}

// LinkedProviders returns the federation providers bound to the account,
// in a stable order.
func (a Account) LinkedProviders() []string {
	var providers []string
	if a.GoogleLinked {
		providers = append(providers, ProviderGoogle)
	}
	if a.FacebookLinked {
		providers = append(providers, ProviderFacebook)
	}
	return providers
}

// PublicProfile is the subset of an account safe to return to any caller:
// no password hash, no federation flags, no admin flag.
type PublicProfile struct {
	Username        string      `json:"username"`
	Fullname        string      `json:"fullname"`
	Bio             string      `json:"bio"`
	ProfileImageURL string      `json:"profile_img"`
	SocialLinks     SocialLinks `json:"social_links"`
	TotalPosts      int64       `json:"total_posts"`
	TotalReads      int64       `json:"total_reads"`
	CreatedAt       time.Time   `json:"created_at"`
}

// Public projects the account onto its public profile subset.
func (a Account) Public() PublicProfile {
	return PublicProfile{
		Username:        a.Username,
		Fullname:        a.Fullname,
		Bio:             a.Bio,
		ProfileImageURL: a.ProfileImageURL,
		SocialLinks:     a.SocialLinks,
		TotalPosts:      a.TotalPosts,
		TotalReads:      a.TotalReads,
		CreatedAt:       a.CreatedAt,
	}
}

// AccountUpdate is a partial update applied by the identity repository.
// Nil fields are left untouched. Email, password hash, admin flag and the
// content counters are deliberately not representable here.
type AccountUpdate struct {
	Username    *string
	Bio         *string
	SocialLinks *SocialLinks
}

// ExternalIdentity is the verified identity triple returned by a federation
// provider after a successful assertion check.
type ExternalIdentity struct {
	Email     string
	Name      string
	AvatarURL string
}
