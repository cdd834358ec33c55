package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirely/pluto/internal/config"
	"github.com/hirely/pluto/internal/server"
)

var (
	servePort       int
	serveConfigFile string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for extraction, scoring, briefing, and full pipeline runs.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveConfigFile, "config", "c", "", "Path to config JSON file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(serveConfigFile)
	if err != nil {
		return err
	}

	// Environment values act as flags here; the config file fills gaps.
	cfg := mergeFlags(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	}, fileCfg)
	if cfg.APIKey == "" {
		return fmt.Errorf("an API key is required (GEMINI_API_KEY env var or 'api_key' config field)")
	}

	scoringCfg, err := fileCfg.ScoringConfig()
	if err != nil {
		return err
	}

	port := servePort
	if cfg.Port != 0 && port == 8080 {
		port = cfg.Port
	}

	srv, err := server.New(context.Background(), server.Config{
		Port:          port,
		APIKey:        cfg.APIKey,
		DatabaseURL:   cfg.DatabaseURL,
		LLMConfig:     fileCfg.LLMConfig(),
		ScoringConfig: scoringCfg,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
