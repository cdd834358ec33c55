package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirely/pluto/internal/briefing"
	"github.com/hirely/pluto/internal/config"
	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/observability"
	"github.com/hirely/pluto/internal/types"
)

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Generate a narrative interviewer briefing",
	Long:  "Generate a narrative briefing from a scored fact sheet. The briefing's overall fit score always equals the algorithmic score; the narrative explains it, never recomputes it. Debrief mode requires a transcript.",
	RunE:  runBrief,
}

var (
	briefFactSheetFile  string
	briefScoreFile      string
	briefJobFile        string
	briefTranscriptFile string
	briefOutputFile     string
	briefMode           string
	briefConfigFile     string
	briefAPIKey         string
	briefVerbose        bool
)

func init() {
	briefCmd.Flags().StringVarP(&briefFactSheetFile, "fact-sheet", "f", "", "Path to fact sheet JSON file (required)")
	briefCmd.Flags().StringVarP(&briefScoreFile, "score", "s", "", "Path to score result JSON file (required)")
	briefCmd.Flags().StringVarP(&briefJobFile, "job", "j", "", "Path to job requirements JSON file (required)")
	briefCmd.Flags().StringVarP(&briefTranscriptFile, "transcript", "t", "", "Path to interview transcript JSON file (required for debrief mode)")
	briefCmd.Flags().StringVarP(&briefOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	briefCmd.Flags().StringVarP(&briefMode, "mode", "m", "prebrief", "Briefing mode: prebrief or debrief")
	briefCmd.Flags().StringVarP(&briefConfigFile, "config", "c", "", "Path to config JSON file")
	briefCmd.Flags().StringVar(&briefAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	briefCmd.Flags().BoolVarP(&briefVerbose, "verbose", "v", false, "Print a formatted briefing summary")
	_ = briefCmd.MarkFlagRequired("fact-sheet")
	_ = briefCmd.MarkFlagRequired("score")
	_ = briefCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(briefCmd)
}

func runBrief(_ *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(briefConfigFile)
	if err != nil {
		return err
	}
	cfg := mergeFlags(config.Config{APIKey: briefAPIKey, Verbose: briefVerbose}, fileCfg)

	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	mode := types.BriefingMode(briefMode)
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q: must be \"prebrief\" or \"debrief\"", briefMode)
	}

	sheetBytes, err := os.ReadFile(briefFactSheetFile)
	if err != nil {
		return fmt.Errorf("failed to read fact sheet file: %w", err)
	}
	var sheet types.FactSheet
	if err := json.Unmarshal(sheetBytes, &sheet); err != nil {
		return fmt.Errorf("failed to parse fact sheet JSON: %w", err)
	}

	scoreBytes, err := os.ReadFile(briefScoreFile)
	if err != nil {
		return fmt.Errorf("failed to read score file: %w", err)
	}
	var score types.ScoreResult
	if err := json.Unmarshal(scoreBytes, &score); err != nil {
		return fmt.Errorf("failed to parse score JSON: %w", err)
	}

	job, err := loadJobRequirements(briefJobFile)
	if err != nil {
		return err
	}

	transcript, err := loadTranscript(briefTranscriptFile)
	if err != nil {
		return err
	}
	if mode == types.ModeDebrief && (transcript == nil || transcript.Empty()) {
		return fmt.Errorf("debrief mode requires a transcript (--transcript)")
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, fileCfg.LLMConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	briefer := briefing.NewBriefer(client)
	brief, err := briefer.Brief(ctx, &score, &sheet, job, transcript, mode)
	if err != nil {
		return fmt.Errorf("briefing generation failed: %w", err)
	}

	if cfg.Verbose {
		observability.NewPrinter(os.Stderr).PrintBriefing(brief)
	}

	return writeJSONOutput(briefOutputFile, brief)
}
