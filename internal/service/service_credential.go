package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/credvault/credvault/internal/crypto"
	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/store"
	"github.com/credvault/credvault/models"
)

// credentialService is the concrete implementation of CredentialService.
// It sits between the HTTP layer and storage: plaintext passwords arrive
// here, go through the codec, and only the iv/ciphertext pair continues to
// the repository. The reverse path exists solely in Reveal.
type credentialService struct {
	credentialRepository store.CredentialRepository
	platformRepository   store.PlatformRepository
	codec                crypto.Codec
	logger               *logger.Logger
}

// NewCredentialService constructs a CredentialService over the given
// repositories and secret codec.
func NewCredentialService(credentialRepository store.CredentialRepository, platformRepository store.PlatformRepository, codec crypto.Codec, logger *logger.Logger) CredentialService {
	return &credentialService{
		credentialRepository: credentialRepository,
		platformRepository:   platformRepository,
		codec:                codec,
		logger:               logger,
	}
}

// Create encrypts the password and stores a new credential under the platform
// named in the request. An unknown platform title is registered on the fly
// instead of being rejected, so adding the first credential for a site is a
// single call.
//
// Returns:
//   - ErrInvalidDataProvided on an empty password or platform title.
//   - ErrMissingLoginIdentifier when neither username nor email is given.
func (c *credentialService) Create(ctx context.Context, ownerID int64, request models.CredentialRequest) (*models.Credential, error) {
	log := logger.FromContext(ctx)

	title := models.NormalizeTitle(request.PlatformTitle)
	if title == "" || request.Password == "" {
		return nil, ErrInvalidDataProvided
	}
	if request.Username == "" && request.Email == "" {
		return nil, ErrMissingLoginIdentifier
	}

	platform, err := c.findOrCreatePlatform(ctx, ownerID, title, request.WebsiteURL)
	if err != nil {
		return nil, err
	}

	iv, encryptedPassword, err := c.codec.Encrypt(request.Password)
	if err != nil {
		log.Err(err).Str("func", "credentialService.Create").Int64("owner_id", ownerID).Msg("password encryption failed")
		return nil, fmt.Errorf("password encryption failed: %w", err)
	}

	credential := &models.Credential{
		OwnerID:       ownerID,
		PlatformID:    platform.PlatformID,
		Username:      request.Username,
		Email:         request.Email,
		PlatformTitle: platform.Title,
		WebsiteURL:    platform.WebsiteURL,
	}
	if err := credential.SetSecret(iv, encryptedPassword); err != nil {
		return nil, err
	}

	saved, err := c.credentialRepository.CreateCredential(ctx, credential)
	if err != nil {
		log.Err(err).Str("func", "credentialService.Create").Int64("owner_id", ownerID).Int64("platform_id", platform.PlatformID).Msg("credential creation failed")
		return nil, fmt.Errorf("credential creation failed: %w", err)
	}

	return saved, nil
}

// List returns the owner's credentials without secret material, optionally
// narrowed to one platform by title. A title that matches no platform yields
// an empty listing rather than an error, so the response does not distinguish
// "no such platform" from "platform with no credentials".
func (c *credentialService) List(ctx context.Context, ownerID int64, platformTitle string) ([]models.Credential, error) {
	log := logger.FromContext(ctx)

	var platformID int64
	if title := models.NormalizeTitle(platformTitle); title != "" {
		platform, err := c.platformRepository.FindPlatformByTitle(ctx, ownerID, title)
		if err != nil {
			if errors.Is(err, store.ErrPlatformNotFound) {
				return []models.Credential{}, nil
			}

			log.Err(err).Str("func", "credentialService.List").Int64("owner_id", ownerID).Msg("platform lookup failed")
			return nil, fmt.Errorf("platform lookup failed: %w", err)
		}
		platformID = platform.PlatformID
	}

	credentials, err := c.credentialRepository.ListCredentials(ctx, ownerID, platformID)
	if err != nil {
		log.Err(err).Str("func", "credentialService.List").Int64("owner_id", ownerID).Msg("credential listing failed")
		return nil, fmt.Errorf("credential listing failed: %w", err)
	}

	return credentials, nil
}

// Get returns one credential. The secret pair stays inside the model's
// unexported fields and never surfaces in a serialized response.
func (c *credentialService) Get(ctx context.Context, ownerID, credentialID int64) (*models.Credential, error) {
	credential, err := c.credentialRepository.FindCredentialByID(ctx, ownerID, credentialID)
	if err != nil {
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}

	return credential, nil
}

// Update overwrites the fields supplied in the request: a new password is
// re-encrypted with a fresh IV, new identifiers replace the stored ones.
// Omitted fields keep their stored values, so a password-only rotation leaves
// the identifiers alone and a rename leaves the secret alone. A request
// supplying none of username, email and password changes nothing and is
// rejected.
func (c *credentialService) Update(ctx context.Context, ownerID, credentialID int64, request models.CredentialRequest) (*models.Credential, error) {
	log := logger.FromContext(ctx)

	if request.Username == "" && request.Email == "" && request.Password == "" {
		return nil, ErrInvalidDataProvided
	}

	credential, err := c.credentialRepository.FindCredentialByID(ctx, ownerID, credentialID)
	if err != nil {
		return nil, fmt.Errorf("credential lookup failed: %w", err)
	}

	if request.Username != "" {
		credential.Username = request.Username
	}
	if request.Email != "" {
		credential.Email = request.Email
	}

	if request.Password != "" {
		iv, encryptedPassword, encErr := c.codec.Encrypt(request.Password)
		if encErr != nil {
			log.Err(encErr).Str("func", "credentialService.Update").Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("password encryption failed")
			return nil, fmt.Errorf("password encryption failed: %w", encErr)
		}
		if err := credential.SetSecret(iv, encryptedPassword); err != nil {
			return nil, err
		}
	}

	if err := c.credentialRepository.UpdateCredential(ctx, credential); err != nil {
		log.Err(err).Str("func", "credentialService.Update").Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("credential update failed")
		return nil, fmt.Errorf("credential update failed: %w", err)
	}

	return credential, nil
}

// Delete removes one credential.
func (c *credentialService) Delete(ctx context.Context, ownerID, credentialID int64) error {
	if err := c.credentialRepository.DeleteCredential(ctx, ownerID, credentialID); err != nil {
		return fmt.Errorf("credential deletion failed: %w", err)
	}

	return nil
}

// Reveal decrypts and returns the stored password of one credential. This is
// the only code path where a stored secret turns back into plaintext.
func (c *credentialService) Reveal(ctx context.Context, ownerID, credentialID int64) (string, error) {
	log := logger.FromContext(ctx)

	credential, err := c.credentialRepository.FindCredentialByID(ctx, ownerID, credentialID)
	if err != nil {
		return "", fmt.Errorf("credential lookup failed: %w", err)
	}

	iv, encryptedPassword := credential.Secret()
	password, err := c.codec.Decrypt(iv, encryptedPassword)
	if err != nil {
		log.Err(err).Str("func", "credentialService.Reveal").Int64("owner_id", ownerID).Int64("credential_id", credentialID).Msg("password decryption failed")
		return "", fmt.Errorf("password decryption failed: %w", err)
	}

	return password, nil
}

// findOrCreatePlatform resolves title for ownerID, registering the platform
// when it does not exist yet. A create that loses a concurrent race to
// another request falls back to the lookup, so the winner's row is reused.
func (c *credentialService) findOrCreatePlatform(ctx context.Context, ownerID int64, title, websiteURL string) (models.Platform, error) {
	log := logger.FromContext(ctx)

	platform, err := c.platformRepository.FindPlatformByTitle(ctx, ownerID, title)
	if err == nil {
		return platform, nil
	}
	if !errors.Is(err, store.ErrPlatformNotFound) {
		log.Err(err).Str("func", "credentialService.findOrCreatePlatform").Int64("owner_id", ownerID).Msg("platform lookup failed")
		return models.Platform{}, fmt.Errorf("platform lookup failed: %w", err)
	}

	created, err := c.platformRepository.CreatePlatform(ctx, models.Platform{
		OwnerID:    ownerID,
		Title:      title,
		WebsiteURL: websiteURL,
	})
	if err == nil {
		return created, nil
	}
	if errors.Is(err, store.ErrPlatformAlreadyExists) {
		return c.platformRepository.FindPlatformByTitle(ctx, ownerID, title)
	}

	log.Err(err).Str("func", "credentialService.findOrCreatePlatform").Int64("owner_id", ownerID).Msg("platform creation failed")
	return models.Platform{}, fmt.Errorf("platform creation failed: %w", err)
}
