package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/julianstephens/medimate/internal/constants"
)

const (
	EnvDB           = "MEDIMATE_DB"
	EnvAddr         = "MEDIMATE_ADDR"
	EnvDBConnection = "MEDIMATE_DB_CONNECTION"
	EnvLogDir       = "MEDIMATE_LOG_DIR"
	EnvDebug        = "MEDIMATE_DEBUG"
)

// Config holds the environment-derived defaults. Command-line flags take
// precedence over every field.
type Config struct {
	// DB is a SQLite file path or a PostgreSQL connection string without a
	// password
	DB   string
	Addr string
	// DBConnection is a full PostgreSQL connection string, password
	// included, supplied through the environment instead of the keyring
	DBConnection string
	// LogDir overrides the directory log files are written under. Empty
	// means alongside the database.
	LogDir string
	Debug  bool
}

// LoadEnvFile loads variables from path into the process environment
// without overriding ones already set. An empty path means ".env" in the
// working directory, which may be absent.
func LoadEnvFile(path string) error {
	if path == "" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// Load reads configuration from environment variables
func Load() Config {
	return Config{
		DB:           getEnv(EnvDB, constants.DefaultConfigPath),
		Addr:         getEnv(EnvAddr, constants.DefaultAddr),
		DBConnection: getEnv(EnvDBConnection, ""),
		LogDir:       getEnv(EnvLogDir, ""),
		Debug:        getEnvAsBool(EnvDebug, false),
	}
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool gets an environment variable as a bool or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
