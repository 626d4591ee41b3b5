// Package config provides a flexible configuration management system for the
// seggo chunking toolkit. It handles configuration loading, validation, and
// persistence with support for multiple sources:
//   - Configuration files (JSON or YAML)
//   - Environment variables
//   - Programmatic defaults
//
// The package implements a hierarchical configuration system where settings can be
// overridden in the following order (highest to lowest precedence):
//  1. Environment variables
//  2. Configuration file
//  3. Default values
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/seggo/seggo/seg"
)

// Config holds all configuration for the chunking toolkit. It provides a
// centralized way to manage settings across different components of the system.
//
// Configuration categories:
//   - Chunker settings: Strategy and sizing for text splitting
//   - Cleaner settings: Text normalization toggles
//   - Loader settings: File and URL ingestion behavior
//   - System settings: Logging
type Config struct {
	// Chunker settings control how text is split
	ChunkSize        int    `json:"chunk_size" yaml:"chunk_size"`               // Target chunk size in characters
	ChunkOverlap     int    `json:"chunk_overlap" yaml:"chunk_overlap"`         // Characters repeated between chunks
	Strategy         string `json:"strategy" yaml:"strategy"`                   // Chunking strategy name
	MinChunkSize     int    `json:"min_chunk_size" yaml:"min_chunk_size"`       // Smallest chunk worth keeping
	SentenceBoundary bool   `json:"sentence_boundary" yaml:"sentence_boundary"` // Prefer sentence-end cuts

	// Cleaner settings control text normalization before chunking
	CleanText    bool `json:"clean_text" yaml:"clean_text"`       // Enable the cleaning stage
	Lowercase    bool `json:"lowercase" yaml:"lowercase"`         // Fold cleaned text to lower case
	RemoveURLs   bool `json:"remove_urls" yaml:"remove_urls"`     // Strip http(s) URLs
	RemoveEmails bool `json:"remove_emails" yaml:"remove_emails"` // Strip email addresses

	// Loader settings control ingestion behavior
	Timeout     time.Duration `json:"timeout" yaml:"timeout"`             // URL download timeout in nanoseconds
	MaxFileSize int64         `json:"max_file_size" yaml:"max_file_size"` // Largest file to read, in bytes
	Recursive   bool          `json:"recursive" yaml:"recursive"`         // Descend into subdirectories
	Concurrency int           `json:"concurrency" yaml:"concurrency"`     // Parallel loads (0 = one per CPU)

	// System settings
	LogLevel string `json:"log_level" yaml:"log_level"` // off, error, warn, info or debug
}

// LoadConfig loads configuration from multiple sources, combining them according
// to the precedence rules. It automatically searches for configuration files in
// standard locations and applies environment variable overrides.
//
// Configuration file search paths:
//  1. $SEGGO_CONFIG environment variable
//  2. ~/.seggo/config.json or config.yaml
//  3. ~/.config/seggo/config.json or config.yaml
//  4. ./seggo.json or ./seggo.yaml
//
// Environment variable overrides:
//   - SEGGO_STRATEGY: Chunking strategy name
//   - SEGGO_CHUNK_SIZE: Target chunk size
//   - SEGGO_CHUNK_OVERLAP: Overlap between chunks
//   - SEGGO_MIN_CHUNK_SIZE: Smallest chunk worth keeping
//   - SEGGO_LOG_LEVEL: Logging verbosity
//
// Example usage:
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("Using strategy: %s\n", cfg.Strategy)
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	configFile := os.Getenv("SEGGO_CONFIG")
	if configFile == "" {
		configFile = findConfigFile()
	}

	if configFile != "" {
		if err := cfg.loadFile(configFile); err != nil {
			return nil, err
		}
	}

	// Override with environment variables
	if strategy := os.Getenv("SEGGO_STRATEGY"); strategy != "" {
		cfg.Strategy = strategy
	}
	if err := envInt("SEGGO_CHUNK_SIZE", &cfg.ChunkSize); err != nil {
		return nil, err
	}
	if err := envInt("SEGGO_CHUNK_OVERLAP", &cfg.ChunkOverlap); err != nil {
		return nil, err
	}
	if err := envInt("SEGGO_MIN_CHUNK_SIZE", &cfg.MinChunkSize); err != nil {
		return nil, err
	}
	if level := os.Getenv("SEGGO_LOG_LEVEL"); level != "" {
		cfg.LogLevel = level
	}

	return cfg, nil
}

// DefaultConfig returns the built-in defaults without consulting files or
// the environment.
func DefaultConfig() *Config {
	return &Config{
		ChunkSize:        seg.DefaultChunkSize,
		ChunkOverlap:     seg.DefaultChunkOverlap,
		Strategy:         string(seg.StrategyFixedSize),
		MinChunkSize:     seg.DefaultMinChunkSize,
		SentenceBoundary: true,
		CleanText:        true,
		RemoveURLs:       true,
		RemoveEmails:     true,
		Timeout:          30 * time.Second,
		MaxFileSize:      seg.DefaultMaxFileSize,
		Recursive:        true,
		LogLevel:         "warn",
	}
}

// findConfigFile checks the default locations and returns the first config
// file that exists, or an empty string.
func findConfigFile() string {
	var candidates []string
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".seggo", "config.json"),
			filepath.Join(home, ".seggo", "config.yaml"),
			filepath.Join(home, ".config", "seggo", "config.json"),
			filepath.Join(home, ".config", "seggo", "config.yaml"),
		)
	}
	candidates = append(candidates, "seggo.json", "seggo.yaml")

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	return nil
}

func envInt(name string, dst *int) error {
	value := os.Getenv(name)
	if value == "" {
		return nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = n
	return nil
}

// Save persists the configuration to a file at the specified path. The
// format follows the extension: .yaml or .yml writes YAML, anything else
// writes indented JSON. It creates any necessary parent directories.
//
// Example usage:
//
//	cfg := config.DefaultConfig()
//	cfg.Strategy = "sentence"
//	err := cfg.Save("~/.seggo/config.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
