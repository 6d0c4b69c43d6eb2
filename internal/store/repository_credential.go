package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/models"
)

// credentialRepository is the PostgreSQL-backed implementation of
// [CredentialRepository]. It manages encrypted credential records in the
// "credentials" table.
//
// Secret columns (iv, encrypted_password) are scanned into locals and
// installed through [models.Credential.SetSecret] so they stay out of the
// struct's exported surface. Listing queries never load them at all.
type credentialRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCredentialRepository constructs a [CredentialRepository] backed by the
// provided database connection and logger.
func NewCredentialRepository(db *DB, logger *logger.Logger) CredentialRepository {
	logger.Debug().Msg("creating credential repository")
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCredential persists a new credential record. The credential must
// carry a complete secret pair; an incomplete one is rejected with
// [models.ErrIncompleteSecret] before any SQL runs.
//
// Server-assigned fields (CredentialID, CreatedAt, UpdatedAt) are written
// back into the provided credential.
func (r *credentialRepository) CreateCredential(ctx context.Context, credential *models.Credential) (*models.Credential, error) {
	log := logger.FromContext(ctx)

	if !credential.HasSecret() {
		return nil, models.ErrIncompleteSecret
	}

	iv, encryptedPassword := credential.Secret()
	row := r.db.QueryRowContext(ctx, createCredential,
		credential.OwnerID,
		credential.PlatformID,
		credential.Username,
		credential.Email,
		iv,
		encryptedPassword,
	)

	if err := row.Scan(&credential.CredentialID, &credential.CreatedAt, &credential.UpdatedAt); err != nil {
		log.Err(err).
			Str("func", "credentialRepository.CreateCredential").
			Int64("owner_id", credential.OwnerID).
			Int64("platform_id", credential.PlatformID).
			Msg("failed to insert credential")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return credential, nil
}

// ListCredentials returns the owner's credentials joined with their platform
// title and website URL, newest first. A non-zero platformID narrows the
// result to one platform. The listing projection carries no secret columns.
func (r *credentialRepository) ListCredentials(ctx context.Context, ownerID, platformID int64) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCredentialsQuery(ownerID, platformID)
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.ListCredentials").Int64("owner_id", ownerID).Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.ListCredentials").Int64("owner_id", ownerID).Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	credentials := make([]models.Credential, 0, 50)

	for rows.Next() {
		var credential models.Credential

		scanErr := rows.Scan(
			&credential.CredentialID,
			&credential.OwnerID,
			&credential.PlatformID,
			&credential.Username,
			&credential.Email,
			&credential.PlatformTitle,
			&credential.WebsiteURL,
			&credential.CreatedAt,
			&credential.UpdatedAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "credentialRepository.ListCredentials").Int64("owner_id", ownerID).Msg("failed to scan credential row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}

		credentials = append(credentials, credential)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "credentialRepository.ListCredentials").Int64("owner_id", ownerID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return credentials, nil
}

// FindCredentialByID retrieves an owner-scoped credential including its
// secret pair. A credential owned by another user is reported as
// [ErrCredentialNotFound], never as forbidden.
func (r *credentialRepository) FindCredentialByID(ctx context.Context, ownerID, credentialID int64) (*models.Credential, error) {
	log := logger.FromContext(ctx)

	var credential models.Credential
	var iv, encryptedPassword string

	row := r.db.QueryRowContext(ctx, findCredentialByID, ownerID, credentialID)

	err := row.Scan(
		&credential.CredentialID,
		&credential.OwnerID,
		&credential.PlatformID,
		&credential.Username,
		&credential.Email,
		&iv,
		&encryptedPassword,
		&credential.PlatformTitle,
		&credential.WebsiteURL,
		&credential.CreatedAt,
		&credential.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCredentialNotFound
		}

		log.Err(err).Str("func", "credentialRepository.FindCredentialByID").Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("failed to query credential by id")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if err := credential.SetSecret(iv, encryptedPassword); err != nil {
		return nil, err
	}

	return &credential, nil
}

// UpdateCredential replaces username, email and the secret pair of an
// owner-scoped credential. The credential must carry a complete secret pair.
//
// Returns [ErrCredentialNotFound] when the conditional UPDATE touches no row.
func (r *credentialRepository) UpdateCredential(ctx context.Context, credential *models.Credential) error {
	log := logger.FromContext(ctx)

	if !credential.HasSecret() {
		return models.ErrIncompleteSecret
	}

	iv, encryptedPassword := credential.Secret()
	result, err := r.db.ExecContext(ctx, updateCredential,
		credential.OwnerID,
		credential.CredentialID,
		credential.Username,
		credential.Email,
		iv,
		encryptedPassword,
	)
	if err != nil {
		log.Err(err).
			Str("func", "credentialRepository.UpdateCredential").
			Int64("owner_id", credential.OwnerID).
			Int64("credential_id", credential.CredentialID).
			Msg("failed to update credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	return nil
}

// DeleteCredential hard-deletes an owner-scoped credential.
//
// Returns [ErrCredentialNotFound] when no row matched.
func (r *credentialRepository) DeleteCredential(ctx context.Context, ownerID, credentialID int64) error {
	log := logger.FromContext(ctx)

	result, err := r.db.ExecContext(ctx, deleteCredential, ownerID, credentialID)
	if err != nil {
		log.Err(err).Str("func", "credentialRepository.DeleteCredential").Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("failed to delete credential")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCredentialNotFound
	}

	log.Info().Str("func", "credentialRepository.DeleteCredential").Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("deleted credential")

	return nil
}
