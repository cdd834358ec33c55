// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Resume string `json:"resume,omitempty"` // Path to resume text file
	Job    string `json:"job,omitempty"`    // Path to job requirements JSON file

	// Behavior
	APIKey         string `json:"api_key,omitempty"`          // Gemini API key
	DatabaseURL    string `json:"database_url,omitempty"`     // PostgreSQL connection URL
	Verbose        bool   `json:"verbose,omitempty"`          // Print detailed output
	CallTimeoutSec int    `json:"call_timeout_sec,omitempty"` // Per-model-call timeout in seconds

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Scoring overrides. Empty means the built-in defaults apply.
	Scoring *ScoringOverrides `json:"scoring,omitempty"`
}

// ScoringOverrides allows tuning category weights and tier cutoffs from a
// config file. Any override produces a distinct config version string so
// stored scores remain attributable to the parameters that produced them.
type ScoringOverrides struct {
	Version            string             `json:"version,omitempty"`
	Weights            map[string]float64 `json:"weights,omitempty"`
	TopThreshold       int                `json:"top_threshold,omitempty"`
	QualifiedThreshold int                `json:"qualified_threshold,omitempty"`
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
func (c *Config) Validate() error {
	if c.CallTimeoutSec < 0 {
		return fmt.Errorf("config error: 'call_timeout_sec' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	if c.Resume != "" {
		if _, err := os.Stat(c.Resume); os.IsNotExist(err) {
			return fmt.Errorf("config error: resume file not found: %s", c.Resume)
		}
	}
	if c.Job != "" {
		if _, err := os.Stat(c.Job); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.Job)
		}
	}

	if c.Scoring != nil {
		if err := c.Scoring.validate(); err != nil {
			return err
		}
	}

	return nil
}

func (o *ScoringOverrides) validate() error {
	if len(o.Weights) > 0 && o.Version == "" {
		return fmt.Errorf("config error: scoring weight overrides require a 'version' label")
	}
	for name, w := range o.Weights {
		if w < 0 {
			return fmt.Errorf("config error: scoring weight %q must be non-negative", name)
		}
	}
	if o.TopThreshold != 0 && o.QualifiedThreshold != 0 && o.QualifiedThreshold >= o.TopThreshold {
		return fmt.Errorf("config error: 'qualified_threshold' must be below 'top_threshold'")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Resume == "" {
		result.Resume = defaults.Resume
	}
	if result.Job == "" {
		result.Job = defaults.Job
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CallTimeoutSec == 0 {
		result.CallTimeoutSec = defaults.CallTimeoutSec
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if result.Scoring == nil {
		result.Scoring = defaults.Scoring
	}

	return result
}
