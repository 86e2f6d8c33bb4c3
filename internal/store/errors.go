package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrEmailAlreadyExists is returned when an insert would duplicate the
	// email of an existing account (unique constraint on accounts.email).
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrUsernameAlreadyTaken is returned when an insert or update would
	// duplicate the username of an existing account (unique constraint on
	// accounts.username).
	ErrUsernameAlreadyTaken = errors.New("username already taken")

	// ErrAccountNotFound is returned when a query expected to match exactly
	// one account produces an empty result set.
	ErrAccountNotFound = errors.New("account not found")

	// ErrUnknownProvider is returned when LinkProvider is called with a
	// provider name outside the fixed federation provider set.
	ErrUnknownProvider = errors.New("unknown federation provider")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. an empty partial update).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a query against the
	// database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRow is returned when mapping a result row onto an account
	// model fails.
	ErrScanningRow = errors.New("error scanning row")
)
