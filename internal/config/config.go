// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Generation inputs
	Brand        string `json:"brand,omitempty"`        // Brand key from the catalog
	BlogURL      string `json:"blog_url,omitempty"`     // Reference blog for style analysis
	Requirements string `json:"requirements,omitempty"` // Extra writing requirements
	WorkflowFile string `json:"workflow_file,omitempty"`

	// Providers
	Provider     string `json:"provider,omitempty"`       // "gemini" (default) or "openai"
	APIKey       string `json:"api_key,omitempty"`        // LLM API key
	SearchAPIKey string `json:"search_api_key,omitempty"` // Custom Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Custom Search engine ID
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL

	// Limits
	MaxPosts   int `json:"max_posts,omitempty"`   // Autopilot batch cap
	TopicCount int `json:"topic_count,omitempty"` // Ideas per ideation run

	// Behavior
	OutputDir string `json:"output_dir,omitempty"` // Where finished posts are written
	Verbose   bool   `json:"verbose,omitempty"`    // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Provider != "" && c.Provider != "gemini" && c.Provider != "openai" {
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if c.MaxPosts < 0 {
		return fmt.Errorf("config error: 'max_posts' must be non-negative")
	}
	if c.TopicCount < 0 {
		return fmt.Errorf("config error: 'topic_count' must be non-negative")
	}

	if c.WorkflowFile != "" {
		if _, err := os.Stat(c.WorkflowFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: workflow file not found: %s", c.WorkflowFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Brand == "" {
		result.Brand = defaults.Brand
	}
	if result.BlogURL == "" {
		result.BlogURL = defaults.BlogURL
	}
	if result.Requirements == "" {
		result.Requirements = defaults.Requirements
	}
	if result.WorkflowFile == "" {
		result.WorkflowFile = defaults.WorkflowFile
	}
	if result.Provider == "" {
		result.Provider = defaults.Provider
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchCX == "" {
		result.SearchCX = defaults.SearchCX
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}

	// Int fields: use default if zero
	if result.MaxPosts == 0 {
		result.MaxPosts = defaults.MaxPosts
	}
	if result.TopicCount == 0 {
		result.TopicCount = defaults.TopicCount
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
