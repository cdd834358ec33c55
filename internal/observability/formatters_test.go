package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirely/pluto/internal/types"
)

func floatPtr(v float64) *float64 { return &v }
func boolPtr(v bool) *bool        { return &v }

func TestPrintFactSheet(t *testing.T) {
	signal := types.CommunicationStrong
	sheet := &types.FactSheet{
		YearsExperience:      floatPtr(7),
		Skills:               []string{"Go", "PostgreSQL", "Kubernetes", "Terraform", "Redis", "Kafka"},
		Industries:           []string{"fintech"},
		IsFounder:            boolPtr(false),
		LeadershipExperience: boolPtr(true),
		QuotaAttainment:      floatPtr(110),
		CommunicationSignal:  &signal,
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintFactSheet(sheet)
	out := buf.String()

	assert.Contains(t, out, "EXTRACTED FACT SHEET")
	assert.Contains(t, out, "7.0 years")
	assert.Contains(t, out, "strong")
	assert.Contains(t, out, "110%")
	// Unknown fields render as unknown, not defaults.
	assert.Contains(t, out, "unknown")
	// Skill list truncates past the display cap.
	assert.Contains(t, out, "... and 1 more")
}

func TestPrintFactSheet_NilIsNoop(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintFactSheet(nil)
	assert.Empty(t, buf.String())
}

func TestPrintScoreResult(t *testing.T) {
	aiScore := 70
	combined := 71
	score := &types.ScoreResult{
		AlgoScore: 72,
		ScoreBreakdown: types.ScoreBreakdown{
			TechnicalSkills:     67,
			ExperienceRelevance: 89,
		},
		Tier:          types.TierQualified,
		ConfigVersion: "pluto-score-v1",
		AIScore:       &aiScore,
		CombinedScore: &combined,
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintScoreResult(score)
	out := buf.String()

	assert.Contains(t, out, "72/100")
	assert.Contains(t, out, "qualified")
	assert.Contains(t, out, "pluto-score-v1")
	assert.Contains(t, out, "AI score:       70")
	assert.Contains(t, out, "Combined score: 71")
}

func TestPrintBriefing(t *testing.T) {
	brief := &types.Briefing{
		Mode:            types.ModePrebrief,
		TLDR:            "Solid candidate with an infrastructure gap worth probing in the technical round.",
		OverallFitScore: 72,
		Strengths:       []types.Strength{{Claim: "Deep Go experience", Evidence: "7 years"}},
		Concerns: []types.Concern{
			{Claim: "No Kubernetes work listed", Evidence: "resume", Severity: types.SeverityMedium},
		},
		SkillMatches: []types.SkillMatch{
			{Skill: "Go", IsMatch: true},
			{Skill: "Kubernetes", IsMatch: false},
		},
		SuggestedQuestions: []types.SuggestedQuestion{{Question: "Describe your on-call experience."}},
	}

	var buf bytes.Buffer
	NewPrinter(&buf).PrintBriefing(brief)
	out := buf.String()

	assert.Contains(t, out, "INTERVIEW BRIEFING")
	assert.Contains(t, out, "prebrief")
	assert.Contains(t, out, "72/100")
	assert.Contains(t, out, "[medium]")
	assert.Contains(t, out, "(1 gaps)")
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	assert.Equal(t, []string{"one two", "three", "four five"}, lines)

	assert.Equal(t, []string{""}, wrapText("   ", 10))

	for _, line := range wrapText(strings.Repeat("word ", 40), 20) {
		assert.LessOrEqual(t, len(line), 20)
	}
}
