package config

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup. Key material is
// checked for shape only; values are never logged.
func (cfg *StructuredConfig) validate() error {
	if len(cfg.App.EncryptionKey) != 32 {
		return ErrInvalidEncryptionKey
	}

	if cfg.App.AccessTokenSignKey == "" || cfg.App.RefreshTokenSignKey == "" ||
		cfg.App.AccessTokenSignKey == cfg.App.RefreshTokenSignKey {
		return ErrInvalidSignKeys
	}

	if cfg.App.AccessTokenDuration <= 0 || cfg.App.RefreshTokenDuration <= 0 {
		return ErrInvalidTokenDurations
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Server.HTTPAddress == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}
