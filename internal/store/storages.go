package store

import "github.com/credvault/credvault/internal/logger"

// Storages bundles every repository behind a single value that the service
// layer receives at startup.
type Storages struct {
	UserRepository       UserRepository
	PlatformRepository   PlatformRepository
	CredentialRepository CredentialRepository
}

// NewStorages wires all PostgreSQL-backed repositories over the shared
// connection pool.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:       NewUserRepository(db, logger),
		PlatformRepository:   NewPlatformRepository(db, logger),
		CredentialRepository: NewCredentialRepository(db, logger),
	}
}
