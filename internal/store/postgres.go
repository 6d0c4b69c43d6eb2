// Package store implements the PostgreSQL persistence layer: user accounts,
// per-owner platform namespaces, and encrypted credential records.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/credvault/credvault/internal/config"
	"github.com/credvault/credvault/internal/logger"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver
)

// DB wraps the shared *sql.DB connection pool together with the application
// logger. All repositories embed or hold it.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectPostgres opens a connection pool against the configured DSN,
// tunes pool limits and verifies connectivity with a ping.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	if err := conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:     conn,
		logger: log,
	}, nil
}

// postgresError extracts the PostgreSQL error code from a driver error, or
// returns an empty string when err is not a *pgconn.PgError.
func postgresError(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
