// Package config provides application-wide configuration. Values resolve in
// order: built-in defaults, then an optional YAML file, then environment
// variables. All fields have safe defaults so the binaries run locally
// without any setup.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the ECCBC server.
type Config struct {
	// APIBaseURL is the upstream catalog/order API root.
	APIBaseURL string `yaml:"api_base_url"` // ECCBC_API_BASE_URL

	// HTTP front-end listener.
	HTTPHost string `yaml:"http_host"` // ECCBC_HTTP_HOST
	HTTPPort int    `yaml:"http_port"` // ECCBC_HTTP_PORT
}

const (
	envKeyAPIBaseURL = "ECCBC_API_BASE_URL"
	envKeyHTTPHost   = "ECCBC_HTTP_HOST"
	envKeyHTTPPort   = "ECCBC_HTTP_PORT"

	defaultAPIBaseURL = "http://n8n.xandys.xyz:8000"
	defaultHTTPHost   = "0.0.0.0"
	defaultHTTPPort   = 8080
)

// Load reads configuration from environment variables, applying defaults for
// missing values.
func Load() (Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from the YAML file at path (skipped when path
// is empty), then overlays environment variables on top.
func LoadFile(path string) (Config, error) {
	cfg := Config{
		APIBaseURL: defaultAPIBaseURL,
		HTTPHost:   defaultHTTPHost,
		HTTPPort:   defaultHTTPPort,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.APIBaseURL = envOr(envKeyAPIBaseURL, cfg.APIBaseURL)
	cfg.HTTPHost = envOr(envKeyHTTPHost, cfg.HTTPHost)

	if v := os.Getenv(envKeyHTTPPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", envKeyHTTPPort, err)
		}
		cfg.HTTPPort = port
	}

	return cfg, nil
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
