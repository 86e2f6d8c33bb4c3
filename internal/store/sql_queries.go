package store

import (
	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-blog-identity/models"
)

// accountColumns is the canonical column list scanned into models.Account.
// Keep the order in sync with scanAccount.
const accountColumns = `id, email, password_hash, username, fullname, bio, profile_image_url, social_links, is_admin, google_linked, facebook_linked, total_posts, total_reads, created_at`

const (
	insertAccount = `INSERT INTO accounts (id, email, password_hash, username, fullname, bio, profile_image_url, social_links, is_admin, google_linked, facebook_linked)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
    RETURNING ` + accountColumns + `;`

	findAccountByEmail = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE email = $1;`

	findAccountByUsername = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE username = $1;`

	findAccountByID = `SELECT ` + accountColumns + `
    FROM accounts
    WHERE id = $1;`

	accountExistsByUsername = `SELECT EXISTS (SELECT 1 FROM accounts WHERE username = $1);`

	updateAccountPasswordHash = `UPDATE accounts
    SET password_hash = $1
    WHERE id = $2;`

	deleteAccountByID = `DELETE FROM accounts WHERE id = $1;`
)

// psql builds PostgreSQL-flavoured ($1, $2, ...) queries.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// buildUpdateAccountQuery dynamically builds the partial UPDATE applied by
// UpdateFields. Only the non-nil fields of update produce SET clauses; the
// statement returns the full updated row. An update with no fields set is a
// build error, not a no-op round-trip to the database.
func buildUpdateAccountQuery(id string, update models.AccountUpdate) (string, []any, error) {
	builder := psql.Update("accounts")

	hasFields := false
	if update.Username != nil {
		builder = builder.Set("username", *update.Username)
		hasFields = true
	}
	if update.Bio != nil {
		builder = builder.Set("bio", *update.Bio)
		hasFields = true
	}
	if update.SocialLinks != nil {
		builder = builder.Set("social_links", *update.SocialLinks)
		hasFields = true
	}

	if !hasFields {
		return "", nil, ErrBuildingSQLQuery
	}

	return builder.
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + accountColumns).
		ToSql()
}

// providerColumns maps federation provider names onto their accounts table
// flag columns. The map doubles as the provider allow-list for LinkProvider.
var providerColumns = map[string]string{
	models.ProviderGoogle:   "google_linked",
	models.ProviderFacebook: "facebook_linked",
}

// buildLinkProviderQuery builds the UPDATE that sets a federation provider
// flag. Returns ErrUnknownProvider for names outside the fixed provider set,
// which also keeps the column name out of attacker control.
func buildLinkProviderQuery(id string, provider string) (string, []any, error) {
	column, ok := providerColumns[provider]
	if !ok {
		return "", nil, ErrUnknownProvider
	}

	return psql.Update("accounts").
		Set(column, true).
		Where(sq.Eq{"id": id}).
		ToSql()
}
