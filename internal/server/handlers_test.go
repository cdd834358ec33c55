package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirely/pluto/internal/llm"
	"github.com/hirely/pluto/internal/pipeline"
	"github.com/hirely/pluto/internal/scoring"
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
	"tldr": "Capable backend candidate.",
	"overall_fit_score": 50,
	"strengths": [{"claim": "Go depth", "evidence": "7 years"}],
	"concerns": [],
	"skill_matches": [
		{"skill": "Go", "is_match": true},
		{"skill": "PostgreSQL", "is_match": true}
	],
	"suggested_questions": [{"question": "Largest system you ran?"}]
}`

// newTestServer builds a stateless server around a mock client.
func newTestServer(client llm.Client) *Server {
	return &Server{
		client:     client,
		scoringCfg: scoring.DefaultConfig(),
		cache:      pipeline.NewBriefingCache(),
	}
}

func stageAwareClient(extractionResp, briefingResp string) *MockLLMClient {
	return &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			if tier == llm.TierAdvanced {
				return briefingResp, nil
			}
			return extractionResp, nil
		},
	}
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&MockLLMClient{})
	rec := doJSON(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestHandleExtract(t *testing.T) {
	s := newTestServer(stageAwareClient(factSheetResponse, briefingResponse))
	rec := doJSON(t, s, http.MethodPost, "/extract", ExtractRequest{
		ResumeText: "Seven years of Go.",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var sheet types.FactSheet
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sheet))
	assert.Equal(t, []string{"Go", "PostgreSQL"}, sheet.Skills)
	assert.Nil(t, sheet.IsFounder)
}

func TestHandleExtract_MissingResume(t *testing.T) {
	s := newTestServer(&MockLLMClient{})
	rec := doJSON(t, s, http.MethodPost, "/extract", ExtractRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleExtract_InvalidModelOutput(t *testing.T) {
	s := newTestServer(stageAwareClient("not json at all", briefingResponse))
	rec := doJSON(t, s, http.MethodPost, "/extract", ExtractRequest{ResumeText: "resume"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestHandleScore(t *testing.T) {
	s := newTestServer(&MockLLMClient{})
	years := 7.0
	minYears := 5.0
	rec := doJSON(t, s, http.MethodPost, "/score", ScoreRequest{
		FactSheet: &types.FactSheet{
			YearsExperience: &years,
			Skills:          []string{"Go", "PostgreSQL"},
		},
		Job: &types.JobRequirements{
			Title:              "Backend Engineer",
			RequiredSkills:     []string{"Go", "PostgreSQL", "Kubernetes"},
			MinYearsExperience: &minYears,
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var score types.ScoreResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &score))
	assert.Equal(t, 67, score.ScoreBreakdown.TechnicalSkills)
	assert.Equal(t, 89, score.ScoreBreakdown.ExperienceRelevance)
	assert.Equal(t, "pluto-score-v1", score.ConfigVersion)
}

func TestHandleScore_MissingInputs(t *testing.T) {
	s := newTestServer(&MockLLMClient{})

	rec := doJSON(t, s, http.MethodPost, "/score", ScoreRequest{Job: &types.JobRequirements{Title: "x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/score", ScoreRequest{FactSheet: &types.FactSheet{}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBrief(t *testing.T) {
	s := newTestServer(stageAwareClient(factSheetResponse, briefingResponse))
	rec := doJSON(t, s, http.MethodPost, "/brief", BriefRequest{
		FactSheet: &types.FactSheet{Skills: []string{"Go"}},
		Score:     &types.ScoreResult{AlgoScore: 72, ConfigVersion: "pluto-score-v1"},
		Job:       &types.JobRequirements{Title: "Engineer", RequiredSkills: []string{"Go"}},
		Mode:      "prebrief",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var brief types.Briefing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brief))
	assert.Equal(t, 72, brief.OverallFitScore)
	assert.Equal(t, types.ModePrebrief, brief.Mode)
}

func TestHandleBrief_InvalidMode(t *testing.T) {
	s := newTestServer(&MockLLMClient{})
	rec := doJSON(t, s, http.MethodPost, "/brief", BriefRequest{
		FactSheet: &types.FactSheet{},
		Score:     &types.ScoreResult{},
		Job:       &types.JobRequirements{Title: "x"},
		Mode:      "postbrief",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleBrief_CachesIdenticalRequests(t *testing.T) {
	briefingCalls := 0
	client := &MockLLMClient{
		GenerateJSONFunc: func(_ context.Context, _ string, tier llm.ModelTier) (string, error) {
			if tier == llm.TierAdvanced {
				briefingCalls++
				return briefingResponse, nil
			}
			return factSheetResponse, nil
		},
	}
	s := newTestServer(client)

	req := BriefRequest{
		FactSheet:  &types.FactSheet{Skills: []string{"Go"}},
		Score:      &types.ScoreResult{AlgoScore: 72, ConfigVersion: "pluto-score-v1"},
		Job:        &types.JobRequirements{Title: "Engineer", RequiredSkills: []string{"Go"}},
		Mode:       "prebrief",
		ResumeText: "resume",
	}

	for i := 0; i < 3; i++ {
		rec := doJSON(t, s, http.MethodPost, "/brief", req)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, 1, briefingCalls)
}

func TestHandlePipelineRun(t *testing.T) {
	s := newTestServer(stageAwareClient(factSheetResponse, briefingResponse))
	rec := doJSON(t, s, http.MethodPost, "/pipeline/run", PipelineRunRequest{
		ResumeText: "Seven years of Go and PostgreSQL.",
		Job: &types.JobRequirements{
			Title:          "Backend Engineer",
			RequiredSkills: []string{"Go", "PostgreSQL"},
		},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PipelineRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.FactSheet)
	require.NotNil(t, resp.Score)
	require.NotNil(t, resp.Briefing)
	assert.Empty(t, resp.Notice)
	assert.Equal(t, resp.Score.AlgoScore, resp.Briefing.OverallFitScore)
}

func TestHandlePipelineRun_DegradedBriefingStill200(t *testing.T) {
	s := newTestServer(stageAwareClient(factSheetResponse, "broken output"))
	rec := doJSON(t, s, http.MethodPost, "/pipeline/run", PipelineRunRequest{
		ResumeText: "resume",
		Job:        &types.JobRequirements{Title: "Engineer"},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp PipelineRunResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Score)
	assert.Nil(t, resp.Briefing)
	assert.Equal(t, narrativeUnavailableNotice, resp.Notice)
}

func TestHandlePipelineRun_MissingInputs(t *testing.T) {
	s := newTestServer(&MockLLMClient{})

	rec := doJSON(t, s, http.MethodPost, "/pipeline/run", PipelineRunRequest{Job: &types.JobRequirements{Title: "x"}})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, s, http.MethodPost, "/pipeline/run", PipelineRunRequest{ResumeText: "resume"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetEvaluation_NoDatabase(t *testing.T) {
	s := newTestServer(&MockLLMClient{})
	rec := doJSON(t, s, http.MethodGet,
		fmt.Sprintf("/evaluations/%s/%s", "6a1f3b2c-0000-0000-0000-000000000001", "6a1f3b2c-0000-0000-0000-000000000002"), nil)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
}

func TestHandleBadJSONBody(t *testing.T) {
	s := newTestServer(&MockLLMClient{})
	req := httptest.NewRequest(http.MethodPost, "/extract", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()
	s.routes().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
