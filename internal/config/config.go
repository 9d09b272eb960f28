// Package config loads API server configuration from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config is the full configuration surface of stockscand.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// DBPath is the SQLite database file.
	DBPath string
	// ProtectDefaultUnits prevents deletion of the seeded packaging units.
	ProtectDefaultUnits bool
}

// Load reads environment variables, optionally from the given .env file.
// A missing .env file is not an error; the environment alone may be enough.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load env file %s: %w", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Addr:                getenvWithDefault("STOCKSCAN_ADDR", ":8080"),
		DBPath:              getenvWithDefault("STOCKSCAN_DB", "./stockscan.db"),
		ProtectDefaultUnits: getenvBool("STOCKSCAN_PROTECT_DEFAULT_UNITS", true),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate ensures required fields are populated.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("STOCKSCAN_ADDR must not be empty")
	}
	if c.DBPath == "" {
		return errors.New("STOCKSCAN_DB must not be empty")
	}
	return nil
}

func getenvWithDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}
