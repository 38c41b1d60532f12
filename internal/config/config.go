package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// MemoryDriver keeps everything in process memory; data is lost on exit.
	MemoryDriver = "memory"
	// PostgresDriver persists data in the configured PostgreSQL database.
	PostgresDriver = "postgres"
)

// ErrUnknownDriver is returned by Validate for an unsupported storage driver.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Config represents the application configuration structure.
// It contains settings for the environment, logging, storage selection,
// the database connection and metrics collection.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// Log contains logger related configurations
	Log struct {
		// Level is the minimum enabled log level; empty uses the environment default
		Level string `env:"LOG_LEVEL" env-default:"" yaml:"level"`
	} `yaml:"log"`

	// Storage selects the repository implementation
	Storage struct {
		// Driver is either "memory" or "postgres"
		Driver string `env:"STORAGE_DRIVER" env-default:"memory" yaml:"driver"`
	} `yaml:"storage"`

	// Facade contains policy related configurations
	Facade struct {
		// AllowAdminBootstrap lets the first registered user be an admin without an admin actor
		AllowAdminBootstrap bool `env:"FACADE_ALLOW_ADMIN_BOOTSTRAP" env-default:"true" yaml:"allowAdminBootstrap"`
	} `yaml:"facade"`

	// Metrics contains metrics collection related configurations
	Metrics struct {
		// Enabled wraps the storage with the instrumented decorator
		Enabled bool `env:"METRICS_ENABLED" env-default:"false" yaml:"enabled"`
	} `yaml:"metrics"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"hbnb" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"hbnb" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"hbnb" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
	} `yaml:"database"`
}

// Load receives the path for yaml config file and returns a filled, validated Config struct.
func Load(configPath string) (*Config, error) {
	var cfg Config
	err := cleanenv.ReadConfig(configPath, &cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values cleanenv cannot constrain on its own.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case MemoryDriver, PostgresDriver:
		return nil
	}

	return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Storage.Driver)
}
