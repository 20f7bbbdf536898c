// Package config provides application-wide configuration.
// Values come from an optional YAML file overridden by environment variables;
// all fields have safe defaults so the binary runs locally with no setup.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the kairos server.
type Config struct {
	// Shell is the program used to run the use_cmd tool ("sh -c <cmd>").
	Shell string `yaml:"shell"` // KAIROS_SHELL — default: "sh"

	// HTTPAddr enables the streamable-HTTP transport when non-empty,
	// e.g. "127.0.0.1:8080". Empty means stdio transport.
	HTTPAddr string `yaml:"http_addr"` // KAIROS_HTTP_ADDR — default: ""

	// DBPath enables the SQLite invocation audit trail when non-empty.
	// Empty means audit events are dropped.
	DBPath string `yaml:"db_path"` // KAIROS_DB_PATH — default: ""

	// APIKeyHash is a bcrypt hash of the static API key accepted by the
	// HTTP transport. Empty disables API-key auth.
	APIKeyHash string `yaml:"api_key_hash"` // KAIROS_API_KEY_HASH — default: ""
}

const (
	envKeyShell      = "KAIROS_SHELL"
	envKeyHTTPAddr   = "KAIROS_HTTP_ADDR"
	envKeyDBPath     = "KAIROS_DB_PATH"
	envKeyAPIKeyHash = "KAIROS_API_KEY_HASH"
)

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Shell: "sh",
	}
}

// Load reads configuration from environment variables, applying defaults for
// missing values.
func Load() Config {
	return applyEnv(Defaults())
}

// LoadFile reads configuration from a YAML file, then applies environment
// variable overrides on top. Missing keys in the file keep their defaults.
func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %q: %w", path, err)
	}

	return applyEnv(cfg), nil
}

// applyEnv overrides cfg fields from environment variables where set.
func applyEnv(cfg Config) Config {
	cfg.Shell = envOr(envKeyShell, cfg.Shell)
	cfg.HTTPAddr = envOr(envKeyHTTPAddr, cfg.HTTPAddr)
	cfg.DBPath = envOr(envKeyDBPath, cfg.DBPath)
	cfg.APIKeyHash = envOr(envKeyAPIKeyHash, cfg.APIKeyHash)
	return cfg
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
