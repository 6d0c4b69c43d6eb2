package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/models"
	"github.com/jackc/pgerrcode"
)

// userRepository is the PostgreSQL-backed implementation of [UserRepository].
// It handles account lifecycle and refresh-token persistence against the
// "users" table.
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type userRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewUserRepository constructs a [UserRepository] backed by the provided
// database connection and logger.
func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating user repository")
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// CreateUser persists a new user record and returns the fully populated
// [models.User] with server-assigned fields (UserID, CreatedAt, UpdatedAt).
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - Any other driver-level error → wrapped with [ErrExecutingQuery].
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var saved models.User
	row := r.db.QueryRowContext(ctx, createUser, user.Username, user.Email, user.Fullname, user.PasswordHash)

	if err := row.Scan(&saved.UserID, &saved.Username, &saved.Email, &saved.Fullname, &saved.PasswordHash, &saved.RefreshToken, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "userRepository.CreateUser").Msg("failed to insert user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return saved, nil
}

// FindUserByLogin retrieves a user whose username or email matches one of the
// provided values. Empty values never match.
//
// Returns [ErrUserNotFound] when no record matches.
func (r *userRepository) FindUserByLogin(ctx context.Context, username, email string) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByLogin, username, email)

	if err := row.Scan(&found.UserID, &found.Username, &found.Email, &found.Fullname, &found.PasswordHash, &found.RefreshToken, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "userRepository.FindUserByLogin").Msg("failed to query user by login")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// FindUserByID retrieves a user by its internal identifier.
//
// Returns [ErrUserNotFound] when no record matches.
func (r *userRepository) FindUserByID(ctx context.Context, userID int64) (models.User, error) {
	log := logger.FromContext(ctx)

	var found models.User
	row := r.db.QueryRowContext(ctx, findUserByID, userID)

	if err := row.Scan(&found.UserID, &found.Username, &found.Email, &found.Fullname, &found.PasswordHash, &found.RefreshToken, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "userRepository.FindUserByID").Int64("user_id", userID).Msg("failed to query user by id")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// SetRefreshToken unconditionally replaces the persisted refresh token,
// superseding any previous session of the same user.
//
// Returns [ErrUserNotFound] when the user does not exist.
func (r *userRepository) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, setRefreshToken, userID, token)
	if err != nil {
		log.Err(err).Str("func", "userRepository.SetRefreshToken").Int64("user_id", userID).Msg("failed to store refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// RotateRefreshToken replaces the persisted refresh token only when the
// currently persisted value equals oldToken.
//
// When the conditional UPDATE touches no row the presented token was
// superseded, revoked, or lost a concurrent rotation race, and
// [ErrRefreshTokenMismatch] is returned. At most one of two concurrent
// rotations with the same old token can succeed.
func (r *userRepository) RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, rotateRefreshToken, userID, oldToken, newToken)
	if err != nil {
		log.Err(err).Str("func", "userRepository.RotateRefreshToken").Int64("user_id", userID).Msg("failed to rotate refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().Str("func", "userRepository.RotateRefreshToken").Int64("user_id", userID).Msg("presented refresh token does not match the persisted one")
		return ErrRefreshTokenMismatch
	}

	return nil
}

// ClearRefreshToken removes the persisted refresh token, revoking the user's
// session. Clearing an already-cleared token is not an error.
func (r *userRepository) ClearRefreshToken(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, clearRefreshToken, userID)
	if err != nil {
		log.Err(err).Str("func", "userRepository.ClearRefreshToken").Int64("user_id", userID).Msg("failed to clear refresh token")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdatePassword replaces the stored password hash.
func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, updateUserPassword, userID, passwordHash)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UpdatePassword").Int64("user_id", userID).Msg("failed to update password hash")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// UpdateUser applies the non-empty profile fields of user and returns the
// updated record.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrUserAlreadyExists].
//   - No row matched → [ErrUserNotFound].
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateUserQuery(user)
	if err != nil {
		log.Err(err).Str("func", "userRepository.UpdateUser").Int64("user_id", user.UserID).Msg("failed to build update query")
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.User
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&updated.UserID, &updated.Username, &updated.Email, &updated.Fullname, &updated.PasswordHash, &updated.RefreshToken, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, ErrUserNotFound
		}

		log.Err(err).Str("func", "userRepository.UpdateUser").Int64("user_id", user.UserID).Msg("failed to update user")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.User{}, ErrUserAlreadyExists
		default:
			return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return updated, nil
}

// DeleteUser hard-deletes the account. Owned platforms and credentials are
// removed by the schema's ON DELETE CASCADE.
func (r *userRepository) DeleteUser(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteUser, userID)
	if err != nil {
		log.Err(err).Str("func", "userRepository.DeleteUser").Int64("user_id", userID).Msg("failed to delete user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	log.Info().Str("func", "userRepository.DeleteUser").Int64("user_id", userID).Msg("deleted user account")

	return nil
}
