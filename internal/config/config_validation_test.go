package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			EncryptionKey:        "0123456789abcdef0123456789abcdef",
			AccessTokenSignKey:   "access",
			RefreshTokenSignKey:  "refresh",
			TokenIssuer:          "credvault",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: 720 * time.Hour,
		},
		Storage: Storage{DB: DB{DSN: "postgres://localhost/credvault"}},
		Server:  Server{HTTPAddress: "localhost:8080", RequestTimeout: 30 * time.Second},
	}
}

func TestValidate_OK(t *testing.T) {
	require.NoError(t, validTestConfig().validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*StructuredConfig)
		wantErr error
	}{
		{"short encryption key", func(c *StructuredConfig) { c.App.EncryptionKey = "too-short" }, ErrInvalidEncryptionKey},
		{"empty encryption key", func(c *StructuredConfig) { c.App.EncryptionKey = "" }, ErrInvalidEncryptionKey},
		{"missing access sign key", func(c *StructuredConfig) { c.App.AccessTokenSignKey = "" }, ErrInvalidSignKeys},
		{"missing refresh sign key", func(c *StructuredConfig) { c.App.RefreshTokenSignKey = "" }, ErrInvalidSignKeys},
		{"identical sign keys", func(c *StructuredConfig) { c.App.RefreshTokenSignKey = c.App.AccessTokenSignKey }, ErrInvalidSignKeys},
		{"zero access duration", func(c *StructuredConfig) { c.App.AccessTokenDuration = 0 }, ErrInvalidTokenDurations},
		{"negative refresh duration", func(c *StructuredConfig) { c.App.RefreshTokenDuration = -time.Hour }, ErrInvalidTokenDurations},
		{"empty DSN", func(c *StructuredConfig) { c.Storage.DB.DSN = "" }, ErrInvalidStorageConfigs},
		{"empty address", func(c *StructuredConfig) { c.Server.HTTPAddress = "" }, ErrInvalidServerConfigs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validTestConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.validate(), tt.wantErr)
		})
	}
}
