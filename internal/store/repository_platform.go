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

// platformRepository is the PostgreSQL-backed implementation of
// [PlatformRepository]. It manages per-owner platform namespace entries in
// the "platforms" table. Titles are stored normalized; callers are expected
// to normalize via [models.NormalizeTitle] before calling in.
type platformRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewPlatformRepository constructs a [PlatformRepository] backed by the
// provided database connection and logger.
func NewPlatformRepository(db *DB, logger *logger.Logger) PlatformRepository {
	logger.Debug().Msg("creating platform repository")
	return &platformRepository{
		db:     db,
		logger: logger,
	}
}

// CreatePlatform persists a new platform record and returns it with
// server-assigned fields.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrPlatformAlreadyExists].
//   - Any other driver-level error → wrapped with [ErrExecutingQuery].
func (r *platformRepository) CreatePlatform(ctx context.Context, platform models.Platform) (models.Platform, error) {
	log := logger.FromContext(ctx)

	var saved models.Platform
	row := r.db.QueryRowContext(ctx, createPlatform, platform.OwnerID, platform.Title, platform.WebsiteURL)

	if err := row.Scan(&saved.PlatformID, &saved.OwnerID, &saved.Title, &saved.WebsiteURL, &saved.CreatedAt, &saved.UpdatedAt); err != nil {
		log.Err(err).Str("func", "platformRepository.CreatePlatform").Int64("owner_id", platform.OwnerID).Msg("failed to insert platform")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Platform{}, ErrPlatformAlreadyExists
		default:
			return models.Platform{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return saved, nil
}

// FindPlatformByTitle retrieves the owner's platform with the given
// normalized title. Returns [ErrPlatformNotFound] when no record matches.
func (r *platformRepository) FindPlatformByTitle(ctx context.Context, ownerID int64, title string) (models.Platform, error) {
	log := logger.FromContext(ctx)

	var found models.Platform
	row := r.db.QueryRowContext(ctx, findPlatformByTitle, ownerID, title)

	if err := row.Scan(&found.PlatformID, &found.OwnerID, &found.Title, &found.WebsiteURL, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Platform{}, ErrPlatformNotFound
		}

		log.Err(err).Str("func", "platformRepository.FindPlatformByTitle").Int64("owner_id", ownerID).Msg("failed to query platform by title")
		return models.Platform{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// FindPlatformByID retrieves an owner-scoped platform by id. A platform owned
// by another user is reported as [ErrPlatformNotFound], never as forbidden.
func (r *platformRepository) FindPlatformByID(ctx context.Context, ownerID, platformID int64) (models.Platform, error) {
	log := logger.FromContext(ctx)

	var found models.Platform
	row := r.db.QueryRowContext(ctx, findPlatformByID, ownerID, platformID)

	if err := row.Scan(&found.PlatformID, &found.OwnerID, &found.Title, &found.WebsiteURL, &found.CreatedAt, &found.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Platform{}, ErrPlatformNotFound
		}

		log.Err(err).Str("func", "platformRepository.FindPlatformByID").Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("failed to query platform by id")
		return models.Platform{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return found, nil
}

// ListPlatforms returns the owner's platforms, newest first, optionally
// filtered by normalized title. An empty result is a valid outcome, not an
// error.
func (r *platformRepository) ListPlatforms(ctx context.Context, ownerID int64, title string) ([]models.Platform, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListPlatformsQuery(ownerID, title)
	if err != nil {
		log.Err(err).Str("func", "platformRepository.ListPlatforms").Int64("owner_id", ownerID).Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "platformRepository.ListPlatforms").Int64("owner_id", ownerID).Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	platforms := make([]models.Platform, 0, 20)

	for rows.Next() {
		var platform models.Platform

		if scanErr := rows.Scan(&platform.PlatformID, &platform.OwnerID, &platform.Title, &platform.WebsiteURL, &platform.CreatedAt, &platform.UpdatedAt); scanErr != nil {
			log.Err(scanErr).Str("func", "platformRepository.ListPlatforms").Int64("owner_id", ownerID).Msg("failed to scan platform row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		platforms = append(platforms, platform)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "platformRepository.ListPlatforms").Int64("owner_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return platforms, nil
}

// UpdatePlatform overwrites the non-empty fields of platform for the owner's
// record and returns the updated record. Empty fields stay untouched in
// storage.
//
// Error handling:
//   - PostgreSQL unique_violation (23505) → [ErrPlatformAlreadyExists].
//   - No row matched → [ErrPlatformNotFound].
func (r *platformRepository) UpdatePlatform(ctx context.Context, platform models.Platform) (models.Platform, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdatePlatformQuery(platform)
	if err != nil {
		log.Err(err).Str("func", "platformRepository.UpdatePlatform").Int64("owner_id", platform.OwnerID).Int64("platform_id", platform.PlatformID).Msg("failed to build update query")
		return models.Platform{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Platform
	row := r.db.QueryRowContext(ctx, query, args...)

	if err := row.Scan(&updated.PlatformID, &updated.OwnerID, &updated.Title, &updated.WebsiteURL, &updated.CreatedAt, &updated.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Platform{}, ErrPlatformNotFound
		}

		log.Err(err).Str("func", "platformRepository.UpdatePlatform").Int64("owner_id", platform.OwnerID).Int64("platform_id", platform.PlatformID).Msg("failed to update platform")

		switch postgresError(err) {
		case pgerrcode.UniqueViolation:
			return models.Platform{}, ErrPlatformAlreadyExists
		default:
			return models.Platform{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
	}

	return updated, nil
}

// DeletePlatform removes an owner-scoped platform together with every
// credential of the same owner referencing it, inside a single transaction.
//
// Credentials go first because the credential→platform foreign key restricts
// the platform delete. Either both deletes commit or neither does, so a
// credential can never be left pointing at a vanished platform.
func (r *platformRepository) DeletePlatform(ctx context.Context, ownerID, platformID int64) error {
	log := logger.FromContext(ctx)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Str("func", "platformRepository.DeletePlatform").Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	credentialsResult, err := tx.ExecContext(ctx, deletePlatformCredentials, ownerID, platformID)
	if err != nil {
		log.Err(err).Str("func", "platformRepository.DeletePlatform").Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("failed to delete platform credentials")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	deletedCredentials, err := credentialsResult.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	platformResult, err := tx.ExecContext(ctx, deletePlatform, ownerID, platformID)
	if err != nil {
		log.Err(err).Str("func", "platformRepository.DeletePlatform").Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("failed to delete platform")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := platformResult.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		// rollback via defer: the platform never existed for this owner
		return ErrPlatformNotFound
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Str("func", "platformRepository.DeletePlatform").Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, commitErr)
	}

	log.Info().
		Str("func", "platformRepository.DeletePlatform").
		Int64("owner_id", ownerID).
		Int64("platform_id", platformID).
		Int64("deleted_credentials", deletedCredentials).
		Msg("deleted platform with its credentials")

	return nil
}
