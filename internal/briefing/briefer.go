// Package briefing implements the briefing stage: narrative synthesis of a
// prebrief or debrief from the fact sheet, the authoritative score, the job
// requirements, and (for debriefs) the interview transcript.
//
// The stage never recomputes or alters the score. After generation it forces
// overall_fit_score to the ScoreResult's algo_score and guarantees that
// skill_matches covers every required skill, appending synthetic "not
// addressed" entries when the generative pass under-delivers.
package briefing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/prompts"
	"github.com/hirely/pluto/internal/schemas"
	"github.com/hirely/pluto/internal/types"
)

// maxAttempts caps generative attempts per briefing: the initial call plus
// one corrective retry.
const maxAttempts = 2

// notAddressedLevel is the synthetic candidate_level recorded for required
// skills the generative pass omitted from skill_matches.
const notAddressedLevel = "not addressed"

// Briefer generates briefing artifacts on top of an LLM client.
type Briefer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewBriefer creates a briefer. Narrative synthesis runs on the advanced
// model tier.
func NewBriefer(client llm.Client) *Briefer {
	return &Briefer{
		client: client,
		tier:   llm.TierAdvanced,
	}
}

// Brief produces a Briefing for the given mode. The transcript is optional
// even for debriefs, which degrade gracefully to resume-only input; when
// present it is embedded in the prompt and cited as an evidence source.
//
// Brief is safe to call concurrently and repeatedly with identical input;
// the returned narrative text may vary between calls, but the
// overall_fit_score and skill-match coverage invariants hold on every call.
func (b *Briefer) Brief(ctx context.Context, score *types.ScoreResult, sheet *types.FactSheet, job *types.JobRequirements, transcript *types.Transcript, mode types.BriefingMode) (*types.Briefing, error) {
	if score == nil || sheet == nil || job == nil {
		return nil, &BriefingGenerationError{Message: "score, fact sheet, and job requirements are all required"}
	}
	if !mode.Valid() {
		return nil, &BriefingGenerationError{Message: fmt.Sprintf("unknown briefing mode %q", mode)}
	}

	prompt, err := buildPrompt(score, sheet, job, transcript, mode)
	if err != nil {
		return nil, &BriefingGenerationError{Message: "failed to build prompt", Cause: err}
	}

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt
		raw, err := b.client.GenerateJSON(ctx, prompt, b.tier)
		if err != nil {
			// Timeouts and call failures share the validation-failure
			// retry policy.
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		raw = llm.CleanJSONBlock(raw)
		if err := schemas.ValidateJSONString(briefingSchema, raw); err != nil {
			lastErr = err
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) && attempt < maxAttempts {
				prompt = buildCorrectionPrompt(prompt, raw, validationErr)
			}
			continue
		}

		var briefing types.Briefing
		if err := json.Unmarshal([]byte(raw), &briefing); err != nil {
			lastErr = err
			continue
		}

		postProcess(&briefing, score, job, sheet, mode)
		return &briefing, nil
	}

	return nil, &BriefingGenerationError{
		Message:  "generative output did not produce a valid briefing",
		Attempts: attempts,
		Cause:    lastErr,
	}
}

// buildPrompt embeds the fact sheet, the full score breakdown, and the job
// requirements so the model anchors narrative claims to the real sub-scores
// instead of inventing its own.
func buildPrompt(score *types.ScoreResult, sheet *types.FactSheet, job *types.JobRequirements, transcript *types.Transcript, mode types.BriefingMode) (string, error) {
	sheetJSON, err := json.MarshalIndent(sheet, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal fact sheet: %w", err)
	}
	jobJSON, err := json.MarshalIndent(job, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal job requirements: %w", err)
	}
	scoreJSON, err := json.MarshalIndent(score, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal score: %w", err)
	}

	transcriptSection := ""
	evidenceSources := ""
	if !transcript.Empty() {
		transcriptSection = prompts.Format(
			prompts.MustGet("briefing.json", "transcript-section"),
			map[string]string{"Transcript": transcript.Render()},
		)
		evidenceSources = " or the interview transcript"
	}

	template := prompts.MustGet("briefing.json", "generate-briefing")
	return prompts.Format(template, map[string]string{
		"Mode":              string(mode),
		"AlgoScore":         fmt.Sprintf("%d", score.AlgoScore),
		"FactSheet":         string(sheetJSON),
		"JobRequirements":   string(jobJSON),
		"Score":             string(scoreJSON),
		"TranscriptSection": transcriptSection,
		"EvidenceSources":   evidenceSources,
		"RequiredSkills":    strings.Join(job.RequiredSkills, ", "),
	}), nil
}

// buildCorrectionPrompt appends the validation failure to the original prompt
// so the model can fix its previous output.
func buildCorrectionPrompt(originalPrompt, previousOutput string, verr *schemas.ValidationError) string {
	correction := prompts.Format(
		prompts.MustGet("briefing.json", "retry-correction"),
		map[string]string{
			"PreviousOutput":   previousOutput,
			"ValidationErrors": verr.FormatForRetry(),
		},
	)
	return originalPrompt + "\n\n" + correction
}

// postProcess enforces the stage invariants on a schema-valid briefing:
// the overall fit score mirrors the authoritative algo score exactly, and
// skill_matches covers the full required skill set.
func postProcess(briefing *types.Briefing, score *types.ScoreResult, job *types.JobRequirements, sheet *types.FactSheet, mode types.BriefingMode) {
	briefing.Mode = mode
	briefing.OverallFitScore = score.AlgoScore

	if briefing.Strengths == nil {
		briefing.Strengths = []types.Strength{}
	}
	if briefing.Concerns == nil {
		briefing.Concerns = []types.Concern{}
	}
	if briefing.SkillMatches == nil {
		briefing.SkillMatches = []types.SkillMatch{}
	}
	if briefing.SuggestedQuestions == nil {
		briefing.SuggestedQuestions = []types.SuggestedQuestion{}
	}

	// Required skills the model skipped get a synthetic entry rather than
	// silently vanishing from the table.
	for _, skill := range job.RequiredSkills {
		if briefing.CoversSkill(skill) {
			continue
		}
		briefing.SkillMatches = append(briefing.SkillMatches, types.SkillMatch{
			Skill:          skill,
			RequiredLevel:  "required",
			CandidateLevel: notAddressedLevel,
			IsMatch:        sheet.HasSkill(skill),
		})
	}
}
