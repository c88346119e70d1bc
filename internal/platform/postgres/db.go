package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	// Registers the "pgx" driver with database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/pantry-api/internal/config"
	"github.com/phrazzld/pantry-api/internal/redact"
)

// DriverName is the database/sql driver used for PostgreSQL connections.
const DriverName = "pgx"

// PingTimeout bounds the connectivity check performed by Open.
const PingTimeout = 5 * time.Second

// ErrNoDatabaseURL is returned by Open when no connection string is configured.
var ErrNoDatabaseURL = errors.New("database URL is empty: check your configuration")

// Open creates a connection pool from cfg and verifies it with a ping.
// The caller is responsible for closing the returned pool.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.URL == "" {
		return nil, ErrNoDatabaseURL
	}

	log := logger.With(slog.String("component", "postgres"))
	log.Info("opening database connection", slog.String("url", redact.String(cfg.URL)))

	db, err := sql.Open(DriverName, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %s", redact.Error(err))
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	start := time.Now()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		log.Error("database ping failed",
			slog.String("error", redact.Error(err)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("database ping timed out after %s: %w", PingTimeout, err)
		}
		return nil, fmt.Errorf("failed to connect to database: %s", redact.Error(err))
	}

	log.Info("database connection verified",
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns))
	return db, nil
}
