package service

import (
	"context"
	"fmt"

	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/store"
	"github.com/credvault/credvault/models"
)

// platformService is the concrete implementation of PlatformService. Unlike
// the implicit find-or-create path used when adding credentials, the explicit
// API here is strict: creating a duplicate title is a conflict.
type platformService struct {
	platformRepository store.PlatformRepository
	logger             *logger.Logger
}

// NewPlatformService constructs a PlatformService over the given repository.
func NewPlatformService(platformRepository store.PlatformRepository, logger *logger.Logger) PlatformService {
	return &platformService{
		platformRepository: platformRepository,
		logger:             logger,
	}
}

// Create registers a new platform for the owner. The title is normalized
// (trimmed, lowercased) before storage, so "GitHub " and "github" name the
// same platform.
func (p *platformService) Create(ctx context.Context, ownerID int64, request models.PlatformRequest) (models.Platform, error) {
	log := logger.FromContext(ctx)

	title := models.NormalizeTitle(request.Title)
	if title == "" {
		return models.Platform{}, ErrInvalidDataProvided
	}

	created, err := p.platformRepository.CreatePlatform(ctx, models.Platform{
		OwnerID:    ownerID,
		Title:      title,
		WebsiteURL: request.WebsiteURL,
	})
	if err != nil {
		log.Err(err).Str("func", "platformService.Create").Int64("owner_id", ownerID).Msg("platform creation failed")
		return models.Platform{}, fmt.Errorf("platform creation failed: %w", err)
	}

	return created, nil
}

// List returns the owner's platforms, optionally filtered by normalized
// title.
func (p *platformService) List(ctx context.Context, ownerID int64, title string) ([]models.Platform, error) {
	platforms, err := p.platformRepository.ListPlatforms(ctx, ownerID, models.NormalizeTitle(title))
	if err != nil {
		return nil, fmt.Errorf("platform listing failed: %w", err)
	}

	return platforms, nil
}

// Get returns one platform of the owner.
func (p *platformService) Get(ctx context.Context, ownerID, platformID int64) (models.Platform, error) {
	platform, err := p.platformRepository.FindPlatformByID(ctx, ownerID, platformID)
	if err != nil {
		return models.Platform{}, fmt.Errorf("platform lookup failed: %w", err)
	}

	return platform, nil
}

// Update renames a platform and/or changes its website URL; a field omitted
// from the request keeps its stored value. Renaming onto an existing title of
// the same owner is a conflict.
func (p *platformService) Update(ctx context.Context, ownerID, platformID int64, request models.PlatformRequest) (models.Platform, error) {
	log := logger.FromContext(ctx)

	title := models.NormalizeTitle(request.Title)
	if title == "" && request.WebsiteURL == "" {
		return models.Platform{}, ErrInvalidDataProvided
	}

	updated, err := p.platformRepository.UpdatePlatform(ctx, models.Platform{
		PlatformID: platformID,
		OwnerID:    ownerID,
		Title:      title,
		WebsiteURL: request.WebsiteURL,
	})
	if err != nil {
		log.Err(err).Str("func", "platformService.Update").Int64("owner_id", ownerID).Int64("platform_id", platformID).Msg("platform update failed")
		return models.Platform{}, fmt.Errorf("platform update failed: %w", err)
	}

	return updated, nil
}

// Delete removes a platform together with every credential filed under it.
// The removal is atomic at the storage layer.
func (p *platformService) Delete(ctx context.Context, ownerID, platformID int64) error {
	if err := p.platformRepository.DeletePlatform(ctx, ownerID, platformID); err != nil {
		return fmt.Errorf("platform deletion failed: %w", err)
	}

	return nil
}
