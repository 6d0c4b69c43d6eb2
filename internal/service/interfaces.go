package service

import (
	"context"

	"github.com/credvault/credvault/models"
)

// AuthService owns the account and session lifecycle: registration, login,
// refresh-token rotation, logout, and profile management.
type AuthService interface {
	// Register creates an account and immediately opens a session for it.
	Register(ctx context.Context, request models.RegisterRequest) (models.SessionResponse, error)

	// Login verifies the password and opens a fresh session, superseding any
	// previous one.
	Login(ctx context.Context, request models.LoginRequest) (models.SessionResponse, error)

	// Refresh rotates the presented refresh token into a new token pair.
	// A token that no longer matches the persisted one is rejected with
	// ErrAuthenticationFailed.
	Refresh(ctx context.Context, refreshToken string) (models.SessionResponse, error)

	// Logout revokes the user's session by clearing the persisted refresh
	// token.
	Logout(ctx context.Context, userID int64) error

	// VerifyAccessToken validates a raw access token and returns its decoded
	// claims. Any failure is normalised to ErrTokenIsExpiredOrInvalid.
	VerifyAccessToken(ctx context.Context, tokenString string) (models.Token, error)

	// ChangePassword verifies the old password before storing the new hash.
	ChangePassword(ctx context.Context, userID int64, request models.ChangePasswordRequest) error

	// GetUser returns the public profile of an account.
	GetUser(ctx context.Context, userID int64) (models.User, error)

	// UpdateUser applies non-empty profile fields.
	UpdateUser(ctx context.Context, userID int64, request models.UpdateUserRequest) (models.User, error)

	// DeleteUser removes the account with everything it owns.
	DeleteUser(ctx context.Context, userID int64) error
}

// CredentialService owns encrypted credential records. Passwords cross this
// boundary in plaintext exactly twice: inbound on create/update and outbound
// on reveal.
type CredentialService interface {
	// Create encrypts the password and stores a credential under the named
	// platform, registering the platform on the fly when it is unknown.
	Create(ctx context.Context, ownerID int64, request models.CredentialRequest) (*models.Credential, error)

	// List returns the owner's credentials without secret material. An
	// unknown platform title yields an empty result, not an error.
	List(ctx context.Context, ownerID int64, platformTitle string) ([]models.Credential, error)

	// Get returns one credential without secret material.
	Get(ctx context.Context, ownerID, credentialID int64) (*models.Credential, error)

	// Update overwrites the supplied fields and, when a new password is
	// provided, re-encrypts the secret. Omitted fields keep their stored
	// values.
	Update(ctx context.Context, ownerID, credentialID int64, request models.CredentialRequest) (*models.Credential, error)

	// Delete removes one credential.
	Delete(ctx context.Context, ownerID, credentialID int64) error

	// Reveal decrypts and returns the stored password.
	Reveal(ctx context.Context, ownerID, credentialID int64) (string, error)
}

// PlatformService owns the per-user platform namespace.
type PlatformService interface {
	// Create registers a platform explicitly. A duplicate normalized title
	// is a conflict, unlike the find-or-create path used by credentials.
	Create(ctx context.Context, ownerID int64, request models.PlatformRequest) (models.Platform, error)

	// List returns the owner's platforms, optionally filtered by title.
	List(ctx context.Context, ownerID int64, title string) ([]models.Platform, error)

	// Get returns one platform.
	Get(ctx context.Context, ownerID, platformID int64) (models.Platform, error)

	// Update renames a platform and/or changes its website URL; omitted
	// fields keep their stored values.
	Update(ctx context.Context, ownerID, platformID int64, request models.PlatformRequest) (models.Platform, error)

	// Delete removes a platform together with every credential filed under
	// it.
	Delete(ctx context.Context, ownerID, platformID int64) error
}
