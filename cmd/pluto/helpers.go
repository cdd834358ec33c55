package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hirely/pluto/internal/config"
	"github.com/hirely/pluto/internal/types"
)

// resolveAPIKey returns the flag value if set, otherwise the GEMINI_API_KEY
// environment variable.
func resolveAPIKey(flagValue string) (string, error) {
	apiKey := flagValue
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return "", fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return apiKey, nil
}

// loadFileConfig reads and validates an optional config file. An empty path
// returns nil, which every config.Config method treats as defaults.
func loadFileConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, nil
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags overlays CLI flag values on config file defaults.
func mergeFlags(flags config.Config, fileCfg *config.Config) config.Config {
	if fileCfg == nil {
		return flags
	}
	return flags.MergeWithDefaults(*fileCfg)
}

// loadJobRequirements reads and validates a job requirements JSON file.
func loadJobRequirements(path string) (*types.JobRequirements, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read job file: %w", err)
	}

	var job types.JobRequirements
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, fmt.Errorf("failed to parse job JSON: %w", err)
	}
	if err := job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job requirements: %w", err)
	}
	return &job, nil
}

// loadTranscript reads an optional transcript JSON file. An empty path
// returns nil.
func loadTranscript(path string) (*types.Transcript, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read transcript file: %w", err)
	}

	var transcript types.Transcript
	if err := json.Unmarshal(data, &transcript); err != nil {
		return nil, fmt.Errorf("failed to parse transcript JSON: %w", err)
	}
	return &transcript, nil
}

// writeJSONOutput writes indented JSON to the given path, or stdout when the
// path is empty.
func writeJSONOutput(path string, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(jsonBytes))
		return nil
	}
	if err := os.WriteFile(path, jsonBytes, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
