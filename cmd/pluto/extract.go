package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirely/pluto/internal/config"
	"github.com/hirely/pluto/internal/extraction"
	"github.com/hirely/pluto/internal/ingestion"
	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract a structured fact sheet from a resume",
	Long:  "Extract a structured fact sheet from raw resume text. Fields the resume does not mention come back null rather than defaulted.",
	RunE:  runExtract,
}

var (
	extractResumeFile string
	extractJobFile    string
	extractOutputFile string
	extractConfigFile string
	extractAPIKey     string
	extractVerbose    bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractResumeFile, "resume", "r", "", "Path to resume text file (required)")
	extractCmd.Flags().StringVarP(&extractJobFile, "job", "j", "", "Path to job requirements JSON file (optional context for extraction)")
	extractCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	extractCmd.Flags().StringVarP(&extractConfigFile, "config", "c", "", "Path to config JSON file")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	extractCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print a formatted fact sheet summary")
	_ = extractCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(_ *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(extractConfigFile)
	if err != nil {
		return err
	}
	cfg := mergeFlags(config.Config{APIKey: extractAPIKey, Verbose: extractVerbose}, fileCfg)

	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	resumeBytes, err := os.ReadFile(extractResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	jobText := ""
	if extractJobFile != "" {
		job, err := loadJobRequirements(extractJobFile)
		if err != nil {
			return err
		}
		jobText = job.Title
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, fileCfg.LLMConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	resumeText, err := ingestion.NormalizeDocument(string(resumeBytes))
	if err != nil {
		return fmt.Errorf("failed to normalize resume: %w", err)
	}

	extractor := extraction.NewExtractor(client)
	sheet, err := extractor.Extract(ctx, resumeText, jobText)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintFactSheet(sheet)
	}

	return writeJSONOutput(extractOutputFile, sheet)
}
