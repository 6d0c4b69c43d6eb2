package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrUserAlreadyExists is returned when registering or updating a user
	// collides with an existing username or email (unique violation).
	ErrUserAlreadyExists = errors.New("username or email already taken")

	// ErrUserNotFound is returned when a lookup matches no user record.
	// A lookup by id for a foreign user is indistinguishable from a missing
	// record on purpose.
	ErrUserNotFound = errors.New("user not found")

	// ErrPlatformAlreadyExists is returned when creating or renaming a
	// platform collides with another platform of the same owner
	// (unique violation on owner_id + normalized title).
	ErrPlatformAlreadyExists = errors.New("platform already exists for this owner")

	// ErrPlatformNotFound is returned when an owner-scoped platform lookup
	// matches no record — whether the platform is absent or owned by
	// someone else.
	ErrPlatformNotFound = errors.New("platform not found")

	// ErrCredentialNotFound is returned when an owner-scoped credential
	// lookup matches no record — whether the credential is absent or owned
	// by someone else.
	ErrCredentialNotFound = errors.New("credential not found")

	// ErrRefreshTokenMismatch is returned by the conditional refresh-token
	// rotation when the presented token no longer equals the persisted one,
	// meaning it was superseded, cleared by logout, or lost a concurrent
	// rotation race.
	ErrRefreshTokenMismatch = errors.New("refresh token does not match the persisted one")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination struct fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
