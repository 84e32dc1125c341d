// Package config sources client settings from the environment, with an
// optional .env file for development builds.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

const defaultRequestTimeout = 30 * time.Second

// Config holds everything needed to wire up the client.
type Config struct {
	// APIURL is the base URL of the recipe backend.
	APIURL string

	// RequestTimeout bounds each HTTP request.
	RequestTimeout time.Duration

	// StorageDir is where the encrypted token store keeps its files.
	StorageDir string
}

// Load reads .env when present, then the process environment.
// RECIPES_API_URL is required; everything else has a default.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         os.Getenv("RECIPES_API_URL"),
		RequestTimeout: getDuration("RECIPES_TIMEOUT", defaultRequestTimeout),
		StorageDir:     getEnv("RECIPES_STORAGE_DIR", defaultStorageDir()),
	}

	if cfg.APIURL == "" {
		return nil, errors.New("RECIPES_API_URL is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func defaultStorageDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".recipes-client"
	}
	return filepath.Join(base, "recipes-client")
}
