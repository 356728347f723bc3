package server

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"
)

// Config carries the server settings. The config file is HuJSON (JSON with
// comments and trailing commas).
type Config struct {
	// Listen is the address to serve on.
	Listen string `json:"listen"`

	// StorePath is the imgStore file served by the API routes.
	StorePath string `json:"store"`

	// DocRoot is the directory served for non-API paths.
	DocRoot string `json:"doc_root"`
}

// Defaults for fields absent from the config file.
const (
	DefaultListen  = "localhost:8000"
	DefaultDocRoot = "."
)

// LoadConfig reads and parses the config file at path. Missing optional
// fields fall back to defaults; the store path is required.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// ParseConfig parses HuJSON config bytes.
func ParseConfig(data []byte) (Config, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	if cfg.Listen == "" {
		cfg.Listen = DefaultListen
	}

	if cfg.DocRoot == "" {
		cfg.DocRoot = DefaultDocRoot
	}

	if cfg.StorePath == "" {
		return Config{}, fmt.Errorf("store path is required")
	}

	return cfg, nil
}
