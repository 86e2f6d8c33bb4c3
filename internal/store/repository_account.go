package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/models"
	"github.com/jackc/pgerrcode"
)

// accountRepository is the PostgreSQL-backed implementation of
// [AccountRepository]. It handles account creation, lookup, partial update
// and deletion against the "accounts" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type accountRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewAccountRepository constructs an [AccountRepository] backed by the
// provided database connection and logger.
//
// A debug-level log message is emitted at construction time to aid
// application startup diagnostics.
func NewAccountRepository(db *DB, logger *logger.Logger) AccountRepository {
	logger.Debug().Msg("creating account repository")
	return &accountRepository{
		db:     db,
		logger: logger,
	}
}

// Insert persists a new account record and returns the fully populated
// [models.Account] with server-assigned fields (CreatedAt).
//
// The INSERT uses the [insertAccount] prepared query which returns all
// columns via a RETURNING clause, so the caller receives the canonical
// database representation of the newly created account.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrEmailAlreadyExists] or
//     [ErrUsernameAlreadyTaken], depending on the violated constraint.
//   - Any other driver-level error → wrapped as "unexpected DB error".
//   - Scan failure → wrapped [ErrScanningRow].
func (r *accountRepository) Insert(ctx context.Context, account models.Account) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, insertAccount,
		account.ID,
		account.Email,
		nullableHash(account.PasswordHash),
		account.Username,
		account.Fullname,
		account.Bio,
		account.ProfileImageURL,
		account.SocialLinks,
		account.IsAdmin,
		account.GoogleLinked,
		account.FacebookLinked,
	)

	inserted, err := scanAccount(row)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.Insert").Msg("error inserting account")
		return models.Account{}, r.mapWriteError(err)
	}

	return inserted, nil
}

// FindByEmail retrieves the account whose email matches the given value.
// Returns [ErrAccountNotFound] when no row matches.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	return r.findOne(ctx, findAccountByEmail, email)
}

// FindByUsername retrieves the account whose username matches the given value.
// Returns [ErrAccountNotFound] when no row matches.
func (r *accountRepository) FindByUsername(ctx context.Context, username string) (models.Account, error) {
	return r.findOne(ctx, findAccountByUsername, username)
}

// FindByID retrieves the account with the given id.
// Returns [ErrAccountNotFound] when no row matches.
func (r *accountRepository) FindByID(ctx context.Context, id string) (models.Account, error) {
	return r.findOne(ctx, findAccountByID, id)
}

// ExistsByUsername reports whether the username is already allocated.
// Used by the username allocator; no account data is materialised.
func (r *accountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	log := logger.FromContext(ctx)

	var exists bool
	row := r.db.QueryRowContext(ctx, accountExistsByUsername, username)
	if err := row.Scan(&exists); err != nil {
		log.Err(err).Str("func", "*accountRepository.ExistsByUsername").Msg("error checking username existence")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return exists, nil
}

// UpdateFields applies the non-nil fields of update to the account row and
// returns the updated record.
//
// Error handling:
//   - No row matched → [ErrAccountNotFound] (via sql.ErrNoRows on RETURNING).
//   - unique_violation on the username constraint → [ErrUsernameAlreadyTaken].
//   - Empty update → [ErrBuildingSQLQuery].
func (r *accountRepository) UpdateFields(ctx context.Context, id string, update models.AccountUpdate) (models.Account, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateAccountQuery(id, update)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateFields").Msg("error building update query")
		return models.Account{}, err
	}

	row := r.db.QueryRowContext(ctx, query, args...)
	updated, err := scanAccount(row)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdateFields").Msg("error updating account")
		return models.Account{}, r.mapWriteError(err)
	}

	return updated, nil
}

// UpdatePasswordHash replaces the stored credential digest for the account.
func (r *accountRepository) UpdatePasswordHash(ctx context.Context, id string, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateAccountPasswordHash, passwordHash, id)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.UpdatePasswordHash").Msg("error updating password hash")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// LinkProvider sets the federation provider flag on the account.
func (r *accountRepository) LinkProvider(ctx context.Context, id string, provider string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildLinkProviderQuery(id, provider)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.LinkProvider").Str("provider", provider).Msg("error building link query")
		return err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.LinkProvider").Msg("error linking provider")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// DeleteByID removes the account row.
// Returns [ErrAccountNotFound] when no row matched the id.
func (r *accountRepository) DeleteByID(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteAccountByID, id)
	if err != nil {
		log.Err(err).Str("func", "*accountRepository.DeleteByID").Msg("error deleting account")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

// findOne executes a single-row account lookup query.
func (r *accountRepository) findOne(ctx context.Context, query string, arg any) (models.Account, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, query, arg)
	account, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, ErrAccountNotFound
		}
		log.Err(err).Str("func", "*accountRepository.findOne").Msg("error querying account")
		return models.Account{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return account, nil
}

// mapWriteError translates driver-level errors of INSERT/UPDATE statements
// into repository sentinels.
func (r *accountRepository) mapWriteError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}

	if postgresError(err) == pgerrcode.UniqueViolation {
		if strings.Contains(constraintName(err), "username") {
			return ErrUsernameAlreadyTaken
		}
		return ErrEmailAlreadyExists
	}

	if errors.Is(err, ErrScanningRow) || errors.Is(err, ErrBuildingSQLQuery) {
		return err
	}

	return fmt.Errorf("unexpected DB error: %w", err)
}

// scanAccount maps a result row onto a [models.Account].
// The column order must match [accountColumns].
func scanAccount(row *sql.Row) (models.Account, error) {
	if err := row.Err(); err != nil {
		return models.Account{}, err
	}

	var account models.Account
	var passwordHash sql.NullString

	err := row.Scan(
		&account.ID,
		&account.Email,
		&passwordHash,
		&account.Username,
		&account.Fullname,
		&account.Bio,
		&account.ProfileImageURL,
		&account.SocialLinks,
		&account.IsAdmin,
		&account.GoogleLinked,
		&account.FacebookLinked,
		&account.TotalPosts,
		&account.TotalReads,
		&account.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, err
		}
		return models.Account{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	account.PasswordHash = passwordHash.String

	return account, nil
}

// nullableHash stores an absent credential as NULL rather than an empty
// string, so that federation-only accounts are distinguishable at the
// database level.
func nullableHash(hash string) sql.NullString {
	return sql.NullString{String: hash, Valid: hash != ""}
}
