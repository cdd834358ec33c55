package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hirely/pluto/internal/observability"
	"github.com/hirely/pluto/internal/scoring"
	"github.com/hirely/pluto/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an extracted fact sheet against job requirements",
	Long:  "Score a fact sheet against job requirements. Scoring is deterministic: the same fact sheet, job, and config version always produce the same result. No network calls are made.",
	RunE:  runScore,
}

var (
	scoreFactSheetFile string
	scoreJobFile       string
	scoreOutputFile    string
	scoreConfigFile    string
	scoreVerbose       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreFactSheetFile, "fact-sheet", "f", "", "Path to fact sheet JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreJobFile, "job", "j", "", "Path to job requirements JSON file (required)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	scoreCmd.Flags().StringVarP(&scoreConfigFile, "config", "c", "", "Path to config JSON file with scoring overrides")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print a formatted score breakdown")
	_ = scoreCmd.MarkFlagRequired("fact-sheet")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	sheetBytes, err := os.ReadFile(scoreFactSheetFile)
	if err != nil {
		return fmt.Errorf("failed to read fact sheet file: %w", err)
	}
	var sheet types.FactSheet
	if err := json.Unmarshal(sheetBytes, &sheet); err != nil {
		return fmt.Errorf("failed to parse fact sheet JSON: %w", err)
	}

	job, err := loadJobRequirements(scoreJobFile)
	if err != nil {
		return err
	}

	fileCfg, err := loadFileConfig(scoreConfigFile)
	if err != nil {
		return err
	}
	scoringCfg, err := fileCfg.ScoringConfig()
	if err != nil {
		return err
	}

	result, err := scoring.Score(&sheet, job, scoringCfg)
	if err != nil {
		return fmt.Errorf("scoring failed: %w", err)
	}

	if scoreVerbose {
		observability.NewPrinter(os.Stderr).PrintScoreResult(result)
	}

	return writeJSONOutput(scoreOutputFile, result)
}
