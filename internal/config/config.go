package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Store    StoreConfig    `mapstructure:"store"    validate:"required"`
}

// ServerConfig contains process-wide settings.
type ServerConfig struct {
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL selects the in-memory document store.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"               validate:"omitempty,url"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"    validate:"gte=1"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"    validate:"gte=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" validate:"gte=0"`
}

// StoreConfig controls how documents are laid out in the backing store.
type StoreConfig struct {
	Collection string `mapstructure:"collection" validate:"required,max=64"`
}

// UsesPostgres reports whether a database URL has been configured.
func (c *Config) UsesPostgres() bool {
	return c.Database.URL != ""
}
