// Package extraction implements the extraction stage: unstructured resume
// text in, schema-validated FactSheet out, via a constrained generative call
// with a single corrective retry.
package extraction

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/prompts"
	"github.com/hirely/pluto/internal/schemas"
	"github.com/hirely/pluto/internal/types"
)

// maxAttempts caps generative attempts per extraction: the initial call plus
// one corrective retry. A second failure surfaces ExtractionError rather than
// masking a systemic prompt problem behind more retries.
const maxAttempts = 2

// Extractor turns raw resume text into a FactSheet.
type Extractor struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewExtractor creates an extractor on top of an LLM client.
func NewExtractor(client llm.Client) *Extractor {
	return &Extractor{
		client: client,
		tier:   llm.TierStandard,
	}
}

// Extract produces a FactSheet from resume text, with optional job
// description text as extraction context. The job text never contributes
// facts; it only helps the model resolve ambiguous resume wording.
//
// It has no side effects beyond the outbound generative call; persisting the
// result is the caller's responsibility.
func (e *Extractor) Extract(ctx context.Context, resumeText, jobText string) (*types.FactSheet, error) {
	if strings.TrimSpace(resumeText) == "" {
		return nil, &ExtractionError{Message: "resume text is empty"}
	}

	prompt := buildPrompt(resumeText, jobText)

	var lastErr error
	attempts := 0
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attempts = attempt
		raw, err := e.client.GenerateJSON(ctx, prompt, e.tier)
		if err != nil {
			// Call failures (including timeouts) follow the same
			// one-retry policy as validation failures.
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		raw = llm.CleanJSONBlock(raw)
		if err := schemas.ValidateJSONString(factSheetSchema, raw); err != nil {
			lastErr = err
			var validationErr *schemas.ValidationError
			if errors.As(err, &validationErr) && attempt < maxAttempts {
				prompt = buildCorrectionPrompt(prompt, raw, validationErr)
			}
			continue
		}

		sheet, err := decodeFactSheet(raw)
		if err != nil {
			lastErr = err
			continue
		}
		return sheet, nil
	}

	return nil, &ExtractionError{
		Message:  "generative output did not produce a valid fact sheet",
		Attempts: attempts,
		Cause:    lastErr,
	}
}

// buildPrompt constructs the schema-constrained extraction prompt.
func buildPrompt(resumeText, jobText string) string {
	jobSection := ""
	if strings.TrimSpace(jobText) != "" {
		jobSection = prompts.Format(
			prompts.MustGet("extraction.json", "job-context-section"),
			map[string]string{"JobText": jobText},
		)
	}

	template := prompts.MustGet("extraction.json", "extract-fact-sheet")
	return prompts.Format(template, map[string]string{
		"ResumeText": resumeText,
		"JobSection": jobSection,
	})
}

// buildCorrectionPrompt appends the validation failure to the original prompt
// so the model can fix its previous output.
func buildCorrectionPrompt(originalPrompt, previousOutput string, verr *schemas.ValidationError) string {
	correction := prompts.Format(
		prompts.MustGet("extraction.json", "retry-correction"),
		map[string]string{
			"PreviousOutput":   previousOutput,
			"ValidationErrors": verr.FormatForRetry(),
		},
	)
	return originalPrompt + "\n\n" + correction
}

// decodeFactSheet unmarshals schema-valid JSON into a FactSheet and applies
// light normalization: trimmed, deduplicated skill and industry lists that
// are never nil.
func decodeFactSheet(raw string) (*types.FactSheet, error) {
	var sheet types.FactSheet
	if err := json.Unmarshal([]byte(raw), &sheet); err != nil {
		return nil, err
	}

	sheet.Skills = dedupeStrings(sheet.Skills)
	sheet.Industries = dedupeStrings(sheet.Industries)

	return &sheet, nil
}

// dedupeStrings trims entries and drops duplicates (case-insensitive),
// preserving the original casing of the first occurrence.
func dedupeStrings(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, trimmed)
	}
	return out
}
