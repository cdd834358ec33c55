package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/types"
)

// MockLLMClient implements llm.Client for testing
type MockLLMClient struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, tier llm.ModelTier) (string, error)
	GetModelFunc     func(tier llm.ModelTier) string
	CloseFunc        func() error
}

func (m *MockLLMClient) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	if m.GenerateJSONFunc != nil {
		return m.GenerateJSONFunc(ctx, prompt, tier)
	}
	return "{}", nil
}

func (m *MockLLMClient) GetModel(tier llm.ModelTier) string {
	if m.GetModelFunc != nil {
		return m.GetModelFunc(tier)
	}
	return "mock-model"
}

func (m *MockLLMClient) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

const factSheetResponse = `{
	"years_experience": 7,
	"skills": ["Go", "PostgreSQL"],
	"industries": ["fintech"],
	"is_founder": null,
	"leadership_experience": true,
	"recent_promotion": null,
	"sold_to_finance": null,
	"quota_attainment": null,
	"communication_signal": "moderate"
}`

const briefingResponse = `{
	"tldr": "Capable backend candidate; probe infrastructure depth.",
	"overall_fit_score": 50,
	"strengths": [{"claim": "Strong Go background", "evidence": "7 years across roles"}],
	"concerns": [],
	"skill_matches": [
		{"skill": "Go", "is_match": true},
		{"skill": "PostgreSQL", "is_match": true}
	],
	"suggested_questions": [{"question": "Walk through your largest migration."}]
}`

// stageAwareClient routes extraction calls (standard tier) and briefing
// calls (advanced tier) to separate canned responses.
func stageAwareClient(extractionResp, briefingResp string, extractionErr, briefingErr error) *MockLLMClient {
	return &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			if tier == llm.TierAdvanced {
				return briefingResp, briefingErr
			}
			return extractionResp, extractionErr
		},
	}
}

func runJob() *types.JobRequirements {
	return &types.JobRequirements{
		Title:          "Backend Engineer",
		RequiredSkills: []string{"Go", "PostgreSQL"},
	}
}

func TestRun_FullPipeline(t *testing.T) {
	client := stageAwareClient(factSheetResponse, briefingResponse, nil, nil)

	var stages []string
	result, err := Run(context.Background(), client, RunOptions{
		ResumeText: "Seven years of Go and PostgreSQL.",
		Job:        runJob(),
		Mode:       types.ModePrebrief,
		OnProgress: func(event ProgressEvent) { stages = append(stages, event.Stage) },
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Degraded())

	require.NotNil(t, result.FactSheet)
	require.NotNil(t, result.Score)
	require.NotNil(t, result.Briefing)

	// The briefing mirrors the authoritative algo score, not the model's
	// claimed 50.
	assert.Equal(t, result.Score.AlgoScore, result.Briefing.OverallFitScore)
	assert.Equal(t, []string{"extraction", "scoring", "briefing"}, stages)
}

func TestRun_DefaultsToPrebrief(t *testing.T) {
	client := stageAwareClient(factSheetResponse, briefingResponse, nil, nil)

	result, err := Run(context.Background(), client, RunOptions{
		ResumeText: "resume",
		Job:        runJob(),
	})

	require.NoError(t, err)
	assert.Equal(t, types.ModePrebrief, result.Briefing.Mode)
}

func TestRun_ExtractionFailureIsFatal(t *testing.T) {
	client := stageAwareClient(`not json`, briefingResponse, nil, nil)

	result, err := Run(context.Background(), client, RunOptions{
		ResumeText: "resume",
		Job:        runJob(),
	})

	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRun_BriefingFailureDegradesToScoreOnly(t *testing.T) {
	client := stageAwareClient(factSheetResponse, `broken briefing output`, nil, nil)

	result, err := Run(context.Background(), client, RunOptions{
		ResumeText: "resume",
		Job:        runJob(),
	})

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Degraded())
	assert.Nil(t, result.Briefing)
	assert.Error(t, result.BriefingErr)
	require.NotNil(t, result.Score)
	require.NotNil(t, result.FactSheet)
}

func TestRun_MissingJobFails(t *testing.T) {
	client := stageAwareClient(factSheetResponse, briefingResponse, nil, nil)

	result, err := Run(context.Background(), client, RunOptions{ResumeText: "resume"})
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestRun_InvalidJobFails(t *testing.T) {
	client := stageAwareClient(factSheetResponse, briefingResponse, nil, nil)

	result, err := Run(context.Background(), client, RunOptions{
		ResumeText: "resume",
		Job:        &types.JobRequirements{}, // no title
	})
	require.Error(t, err)
	assert.Nil(t, result)
}
