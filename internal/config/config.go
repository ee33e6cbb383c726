// Package config provides YAML-based configuration for the backend.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Processing ProcessingConfig `yaml:"processing"`
	Storage    StorageConfig    `yaml:"storage"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int    `yaml:"port"`
	BindAddress  string `yaml:"bindAddress"`
	EnableCORS   bool   `yaml:"enableCORS"`
	AllowOrigins string `yaml:"allowOrigins"`
	BodyLimit    string `yaml:"bodyLimit"`
}

// ProcessingConfig contains batch execution settings.
type ProcessingConfig struct {
	WorkerTimeoutMs        int `yaml:"workerTimeoutMs"`
	RunMaxAgeMinutes       int `yaml:"runMaxAgeMinutes"`
	CleanupIntervalMinutes int `yaml:"cleanupIntervalMinutes"`
}

// StorageConfig contains data directory settings.
type StorageConfig struct {
	DataDirectory     string `yaml:"dataDirectory"`
	ReportsDirectory  string `yaml:"reportsDirectory"`
	EnablePersistence bool   `yaml:"enablePersistence"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         8080,
			BindAddress:  "0.0.0.0",
			EnableCORS:   true,
			AllowOrigins: "*",
			BodyLimit:    "50M",
		},
		Processing: ProcessingConfig{
			WorkerTimeoutMs:        10000,
			RunMaxAgeMinutes:       30,
			CleanupIntervalMinutes: 5,
		},
		Storage: StorageConfig{
			DataDirectory:     "./data",
			ReportsDirectory:  "./data/reports",
			EnablePersistence: true,
		},
	}
}

// LoadConfig reads and parses the configuration file. A missing file is not
// an error: defaults are returned so the server runs out of the box.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// validateConfig ensures all required fields are present and valid.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", cfg.Server.Port)
	}
	if cfg.Processing.WorkerTimeoutMs <= 0 {
		return fmt.Errorf("processing.workerTimeoutMs must be positive")
	}
	if cfg.Processing.CleanupIntervalMinutes <= 0 {
		return fmt.Errorf("processing.cleanupIntervalMinutes must be positive")
	}
	if cfg.Storage.DataDirectory == "" {
		return fmt.Errorf("storage.dataDirectory cannot be empty")
	}
	return nil
}

// EnsureDirectories creates the data directories if they do not exist.
func (c *Config) EnsureDirectories() error {
	dirs := []string{c.Storage.DataDirectory}
	if c.Storage.ReportsDirectory != "" {
		dirs = append(dirs, c.Storage.ReportsDirectory)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// WorkerTimeout returns the per-worker timeout as a duration.
func (c *Config) WorkerTimeout() time.Duration {
	return time.Duration(c.Processing.WorkerTimeoutMs) * time.Millisecond
}

// HistoryPath returns the run-history database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Storage.DataDirectory, "runs.duckdb")
}
