package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration values are missing or invalid.
var (
	// ErrInvalidEncryptionKey indicates the vault encryption key is missing
	// or is not exactly 32 bytes long.
	ErrInvalidEncryptionKey = errors.New("encryption key must be exactly 32 bytes")

	// ErrInvalidSignKeys indicates a missing token signing key, or access
	// and refresh keys that are identical.
	ErrInvalidSignKeys = errors.New("access and refresh token sign keys must be set and distinct")

	// ErrInvalidTokenDurations indicates a non-positive token lifetime.
	ErrInvalidTokenDurations = errors.New("token durations must be positive")

	// ErrInvalidStorageConfigs indicates invalid storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidServerConfigs indicates invalid server settings
	// (for example, a missing HTTP address).
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
)
