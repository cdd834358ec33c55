// Package pipeline composes the extraction, scoring, and briefing stages
// with the propagation policy the stages' contracts call for: extraction and
// scoring failures are fatal, briefing failures degrade to a score-only
// result.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/hirely/pluto/internal/briefing"
	"github.com/hirely/pluto/internal/db"
	"github.com/hirely/pluto/internal/extraction"
	"github.com/hirely/pluto/internal/ingestion"
	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/scoring"
	"github.com/hirely/pluto/internal/types"
)

// ProgressEvent represents a progress update during a pipeline run.
type ProgressEvent struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called as pipeline stages complete.
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the inputs for a full pipeline run.
type RunOptions struct {
	ResumeText string
	JobText    string
	Job        *types.JobRequirements
	Transcript *types.Transcript
	Mode       types.BriefingMode

	ScoringConfig *scoring.Config

	// CandidateID/JobID/StageID identify the run for persistence and
	// logging. Persistence is skipped when Store is nil.
	CandidateID uuid.UUID
	JobID       uuid.UUID
	StageID     uuid.UUID
	Store       *db.Store

	OnProgress ProgressCallback
}

// Result is the output of a pipeline run. Briefing is nil and BriefingErr
// non-nil when the run degraded to score-only.
type Result struct {
	FactSheet   *types.FactSheet
	Score       *types.ScoreResult
	Briefing    *types.Briefing
	BriefingErr error
}

// Degraded reports whether the run produced a score without a narrative.
func (r *Result) Degraded() bool {
	return r.BriefingErr != nil
}

// Run executes extraction, scoring, and briefing for one (candidate, job)
// pair. Each invocation is independent: no shared state, safe to call
// concurrently for different pairs.
func Run(ctx context.Context, client llm.Client, opts RunOptions) (*Result, error) {
	if opts.Job == nil {
		return nil, fmt.Errorf("job requirements are required")
	}
	if err := opts.Job.Validate(); err != nil {
		return nil, fmt.Errorf("invalid job requirements: %w", err)
	}
	mode := opts.Mode
	if mode == "" {
		mode = types.ModePrebrief
	}

	resumeText, err := ingestion.NormalizeDocument(opts.ResumeText)
	if err != nil {
		return nil, &extraction.ExtractionError{Message: "resume document unreadable", Cause: err}
	}
	jobText, err := ingestion.NormalizeDocument(opts.JobText)
	if err != nil {
		return nil, &extraction.ExtractionError{Message: "job document unreadable", Cause: err}
	}

	// Stage 1: extraction (fatal on failure)
	sheet, err := extraction.NewExtractor(client).Extract(ctx, resumeText, jobText)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, "extraction", "fact sheet extracted", sheet)

	// Stage 2: scoring (fatal on failure; pure, no model call)
	score, err := scoring.Score(sheet, opts.Job, opts.ScoringConfig)
	if err != nil {
		return nil, err
	}
	emitProgress(&opts, "scoring", fmt.Sprintf("algo score %d (%s)", score.AlgoScore, score.Tier), score)

	if opts.Store != nil {
		if err := opts.Store.SaveEvaluation(ctx, opts.CandidateID, opts.JobID, sheet, score); err != nil {
			return nil, fmt.Errorf("failed to persist evaluation: %w", err)
		}
	}

	result := &Result{FactSheet: sheet, Score: score}

	// Stage 3: briefing (degrades on failure; the score alone is still
	// useful)
	brief, err := briefing.NewBriefer(client).Brief(ctx, score, sheet, opts.Job, opts.Transcript, mode)
	if err != nil {
		var genErr *briefing.BriefingGenerationError
		if errors.As(err, &genErr) {
			result.BriefingErr = err
			emitProgress(&opts, "briefing", "narrative unavailable, degrading to score-only", nil)
			return result, nil
		}
		return nil, err
	}
	result.Briefing = brief
	emitProgress(&opts, "briefing", fmt.Sprintf("%s generated", mode), brief)

	if opts.Store != nil && opts.StageID != uuid.Nil {
		inputHash := BriefingInputHash(resumeText, opts.Transcript, opts.Job, score.ConfigVersion)
		if err := opts.Store.SaveBriefing(ctx, opts.StageID, opts.CandidateID, opts.JobID, brief, inputHash); err != nil {
			return nil, fmt.Errorf("failed to persist briefing: %w", err)
		}
	}

	return result, nil
}

// emitProgress calls the progress callback if configured.
func emitProgress(opts *RunOptions, stage, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Stage:   stage,
			Message: message,
			Content: content,
		})
	}
}
