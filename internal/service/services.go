package service

import (
	"github.com/credvault/credvault/internal/config"
	"github.com/credvault/credvault/internal/crypto"
	"github.com/credvault/credvault/internal/logger"
	"github.com/credvault/credvault/internal/store"
)

// Services bundles the business layer behind a single value handed to the
// HTTP handler at startup.
type Services struct {
	AuthService       AuthService
	CredentialService CredentialService
	PlatformService   PlatformService
}

// NewServices wires every service over the repositories, the secret codec
// and the application security parameters.
func NewServices(storages *store.Storages, codec crypto.Codec, cfg config.App, logger *logger.Logger) *Services {
	return &Services{
		AuthService:       NewAuthService(storages.UserRepository, cfg, logger),
		CredentialService: NewCredentialService(storages.CredentialRepository, storages.PlatformRepository, codec, logger),
		PlatformService:   NewPlatformService(storages.PlatformRepository, logger),
	}
}
