package store

import (
	"context"

	"github.com/credvault/credvault/models"
)

// UserRepository is the data-access layer for user accounts and the single
// persisted refresh token per user.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields. Returns ErrUserAlreadyExists on a username/email collision.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin retrieves a user whose username or email matches one
	// of the given values. Returns ErrUserNotFound when no record matches.
	FindUserByLogin(ctx context.Context, username, email string) (models.User, error)

	// FindUserByID retrieves a user by its internal identifier.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)

	// SetRefreshToken unconditionally replaces the persisted refresh token,
	// superseding any previous session (login, register).
	SetRefreshToken(ctx context.Context, userID int64, token string) error

	// RotateRefreshToken replaces the persisted refresh token only when the
	// currently persisted value equals oldToken. Returns
	// ErrRefreshTokenMismatch when the conditional update touches no row,
	// which is how a lost rotation race or a reused token is detected.
	RotateRefreshToken(ctx context.Context, userID int64, oldToken, newToken string) error

	// ClearRefreshToken removes the persisted refresh token (logout).
	ClearRefreshToken(ctx context.Context, userID int64) error

	// UpdatePassword replaces the stored password hash.
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error

	// UpdateUser applies non-empty profile fields (username, email,
	// fullname) and returns the updated record. Returns
	// ErrUserAlreadyExists on a uniqueness collision.
	UpdateUser(ctx context.Context, user models.User) (models.User, error)

	// DeleteUser hard-deletes the account. Owned platforms and credentials
	// are removed by the schema's ON DELETE CASCADE.
	DeleteUser(ctx context.Context, userID int64) error
}

// PlatformRepository is the data-access layer for per-owner platform
// namespace entries. Titles are stored normalized; callers normalize before
// calling in.
type PlatformRepository interface {
	// CreatePlatform persists a new platform. Returns
	// ErrPlatformAlreadyExists when the owner already has a platform with
	// the same normalized title.
	CreatePlatform(ctx context.Context, platform models.Platform) (models.Platform, error)

	// FindPlatformByTitle retrieves the owner's platform with the given
	// normalized title.
	FindPlatformByTitle(ctx context.Context, ownerID int64, title string) (models.Platform, error)

	// FindPlatformByID retrieves an owner-scoped platform by id.
	FindPlatformByID(ctx context.Context, ownerID, platformID int64) (models.Platform, error)

	// ListPlatforms returns the owner's platforms, newest first, optionally
	// filtered by normalized title.
	ListPlatforms(ctx context.Context, ownerID int64, title string) ([]models.Platform, error)

	// UpdatePlatform replaces title and website URL of an owner-scoped
	// platform. Returns ErrPlatformAlreadyExists on a title collision and
	// ErrPlatformNotFound when the platform does not exist for this owner.
	UpdatePlatform(ctx context.Context, platform models.Platform) (models.Platform, error)

	// DeletePlatform removes an owner-scoped platform and every credential
	// referencing it for the same owner, inside a single transaction, so no
	// orphaned credential can survive the operation.
	DeletePlatform(ctx context.Context, ownerID, platformID int64) error
}

// CredentialRepository is the data-access layer for encrypted credential
// records. Every method is owner-scoped.
type CredentialRepository interface {
	// CreateCredential persists a new credential. The credential must carry
	// a complete secret pair; the write is rejected with
	// models.ErrIncompleteSecret otherwise.
	CreateCredential(ctx context.Context, credential *models.Credential) (*models.Credential, error)

	// ListCredentials returns the owner's credentials joined with their
	// platform title/URL, newest first. A non-zero platformID narrows the
	// result to one platform. Secret fields are not loaded.
	ListCredentials(ctx context.Context, ownerID, platformID int64) ([]models.Credential, error)

	// FindCredentialByID retrieves an owner-scoped credential including its
	// secret pair.
	FindCredentialByID(ctx context.Context, ownerID, credentialID int64) (*models.Credential, error)

	// UpdateCredential replaces username, email and the secret pair of an
	// owner-scoped credential.
	UpdateCredential(ctx context.Context, credential *models.Credential) error

	// DeleteCredential hard-deletes an owner-scoped credential.
	DeleteCredential(ctx context.Context, ownerID, credentialID int64) error
}
