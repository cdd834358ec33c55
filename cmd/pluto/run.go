package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hirely/pluto/internal/config"
	"github.com/hirely/pluto/internal/db"
	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/observability"
	"github.com/hirely/pluto/internal/pipeline"
	"github.com/hirely/pluto/internal/types"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full extract-score-brief pipeline",
	Long:  "Run extraction, scoring, and briefing in sequence for one candidate and job. If briefing fails after retry, the command still succeeds with a score-only result.",
	RunE:  runRun,
}

var (
	runResumeFile     string
	runJobFile        string
	runTranscriptFile string
	runOutputFile     string
	runMode           string
	runConfigFile     string
	runAPIKey         string
	runDatabaseURL    string
	runCandidateID    string
	runJobID          string
	runStageID        string
	runVerbose        bool
)

func init() {
	runCmd.Flags().StringVarP(&runResumeFile, "resume", "r", "", "Path to resume text file (required unless set in config)")
	runCmd.Flags().StringVarP(&runJobFile, "job", "j", "", "Path to job requirements JSON file (required unless set in config)")
	runCmd.Flags().StringVarP(&runTranscriptFile, "transcript", "t", "", "Path to interview transcript JSON file (required for debrief mode)")
	runCmd.Flags().StringVarP(&runOutputFile, "out", "o", "", "Path to output JSON file (default: stdout)")
	runCmd.Flags().StringVarP(&runMode, "mode", "m", "prebrief", "Briefing mode: prebrief or debrief")
	runCmd.Flags().StringVarP(&runConfigFile, "config", "c", "", "Path to config JSON file")
	runCmd.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	runCmd.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL URL for persisting results (overrides DATABASE_URL env var)")
	runCmd.Flags().StringVar(&runCandidateID, "candidate-id", "", "Candidate UUID for persistence")
	runCmd.Flags().StringVar(&runJobID, "job-id", "", "Job UUID for persistence")
	runCmd.Flags().StringVar(&runStageID, "stage-id", "", "Interview stage UUID owning the briefing")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print formatted summaries of each stage")

	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(runConfigFile)
	if err != nil {
		return err
	}
	cfg := mergeFlags(config.Config{
		Resume:      runResumeFile,
		Job:         runJobFile,
		APIKey:      runAPIKey,
		DatabaseURL: runDatabaseURL,
		Verbose:     runVerbose,
	}, fileCfg)

	if cfg.Resume == "" {
		return fmt.Errorf("a resume is required (--resume flag or 'resume' config field)")
	}
	if cfg.Job == "" {
		return fmt.Errorf("job requirements are required (--job flag or 'job' config field)")
	}

	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	mode := types.BriefingMode(runMode)
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q: must be \"prebrief\" or \"debrief\"", runMode)
	}

	resumeBytes, err := os.ReadFile(cfg.Resume)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	job, err := loadJobRequirements(cfg.Job)
	if err != nil {
		return err
	}

	transcript, err := loadTranscript(runTranscriptFile)
	if err != nil {
		return err
	}
	if mode == types.ModeDebrief && (transcript == nil || transcript.Empty()) {
		return fmt.Errorf("debrief mode requires a transcript (--transcript)")
	}

	scoringCfg, err := fileCfg.ScoringConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var store *db.Store
	databaseURL := cfg.DatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL != "" {
		store, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()
	}

	candidateID, jobID, stageID, err := parseRunIDs()
	if err != nil {
		return err
	}
	if store != nil && (candidateID == uuid.Nil || jobID == uuid.Nil) {
		return fmt.Errorf("--candidate-id and --job-id are required when persisting results")
	}

	client, err := llm.NewClient(ctx, fileCfg.LLMConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer func() { _ = client.Close() }()

	printer := observability.NewPrinter(os.Stderr)
	opts := pipeline.RunOptions{
		ResumeText:    string(resumeBytes),
		Job:           job,
		Transcript:    transcript,
		Mode:          mode,
		ScoringConfig: scoringCfg,
		CandidateID:   candidateID,
		JobID:         jobID,
		StageID:       stageID,
		Store:         store,
	}
	if cfg.Verbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Stage, event.Message)
		}
	}

	result, err := pipeline.Run(ctx, client, opts)
	if err != nil {
		return fmt.Errorf("pipeline failed: %w", err)
	}

	if cfg.Verbose {
		printer.PrintFactSheet(result.FactSheet)
		printer.PrintScoreResult(result.Score)
		if result.Briefing != nil {
			printer.PrintBriefing(result.Briefing)
		}
	}
	output := struct {
		FactSheet *types.FactSheet   `json:"fact_sheet"`
		Score     *types.ScoreResult `json:"score"`
		Briefing  *types.Briefing    `json:"briefing,omitempty"`
		Notice    string             `json:"notice,omitempty"`
	}{
		FactSheet: result.FactSheet,
		Score:     result.Score,
		Briefing:  result.Briefing,
	}
	if result.Degraded() {
		fmt.Fprintf(os.Stderr, "Warning: briefing unavailable, returning score-only result: %v\n", result.BriefingErr)
		output.Notice = "narrative briefing unavailable; score-only result"
	}

	return writeJSONOutput(runOutputFile, output)
}

// parseRunIDs parses the optional UUID flags, treating empty as uuid.Nil.
func parseRunIDs() (candidateID, jobID, stageID uuid.UUID, err error) {
	if runCandidateID != "" {
		if candidateID, err = uuid.Parse(runCandidateID); err != nil {
			return uuid.Nil, uuid.Nil, uuid.Nil, fmt.Errorf("invalid --candidate-id: %w", err)
		}
	}
	if runJobID != "" {
		if jobID, err = uuid.Parse(runJobID); err != nil {
			return uuid.Nil, uuid.Nil, uuid.Nil, fmt.Errorf("invalid --job-id: %w", err)
		}
	}
	if runStageID != "" {
		if stageID, err = uuid.Parse(runStageID); err != nil {
			return uuid.Nil, uuid.Nil, uuid.Nil, fmt.Errorf("invalid --stage-id: %w", err)
		}
	}
	return candidateID, jobID, stageID, nil
}
