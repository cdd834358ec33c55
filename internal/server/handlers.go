package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"github.com/hirely/pluto/internal/briefing"
	"github.com/hirely/pluto/internal/db"
	"github.com/hirely/pluto/internal/extraction"
	"github.com/hirely/pluto/internal/ingestion"
	"github.com/hirely/pluto/internal/pipeline"
	"github.com/hirely/pluto/internal/scoring"
	"github.com/hirely/pluto/internal/types"
)

// ExtractRequest represents the request body for /extract
type ExtractRequest struct {
	ResumeText string `json:"resume_text"`
	JobText    string `json:"job_text,omitempty"`
}

// ScoreRequest represents the request body for /score
type ScoreRequest struct {
	FactSheet *types.FactSheet       `json:"fact_sheet"`
	Job       *types.JobRequirements `json:"job"`
}

// BriefRequest represents the request body for /brief
type BriefRequest struct {
	FactSheet   *types.FactSheet       `json:"fact_sheet"`
	Score       *types.ScoreResult     `json:"score"`
	Job         *types.JobRequirements `json:"job"`
	Transcript  *types.Transcript      `json:"transcript,omitempty"`
	Mode        string                 `json:"mode"`
	ResumeText  string                 `json:"resume_text,omitempty"`
	CandidateID uuid.UUID              `json:"candidate_id,omitempty"`
	JobID       uuid.UUID              `json:"job_id,omitempty"`
	StageID     uuid.UUID              `json:"stage_id,omitempty"`
}

// PipelineRunRequest represents the request body for /pipeline/run
type PipelineRunRequest struct {
	ResumeText  string                 `json:"resume_text"`
	JobText     string                 `json:"job_text,omitempty"`
	Job         *types.JobRequirements `json:"job"`
	Transcript  *types.Transcript      `json:"transcript,omitempty"`
	Mode        string                 `json:"mode,omitempty"`
	CandidateID uuid.UUID              `json:"candidate_id,omitempty"`
	JobID       uuid.UUID              `json:"job_id,omitempty"`
	StageID     uuid.UUID              `json:"stage_id,omitempty"`
}

// PipelineRunResponse represents the response for /pipeline/run. When the
// briefing stage failed after retry, Briefing is null and Notice explains the
// degradation; the score fields are still authoritative.
type PipelineRunResponse struct {
	FactSheet *types.FactSheet   `json:"fact_sheet"`
	Score     *types.ScoreResult `json:"score"`
	Briefing  *types.Briefing    `json:"briefing,omitempty"`
	Notice    string             `json:"notice,omitempty"`
}

// EvaluationResponse represents the response for /evaluations lookups
type EvaluationResponse struct {
	CandidateID uuid.UUID          `json:"candidate_id"`
	JobID       uuid.UUID          `json:"job_id"`
	FactSheet   *types.FactSheet   `json:"fact_sheet"`
	Score       *types.ScoreResult `json:"score"`
}

const narrativeUnavailableNotice = "narrative briefing unavailable; score-only result"

// handleExtract runs fact extraction on raw resume text
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ResumeText == "" {
		s.errorResponse(w, http.StatusBadRequest, "resume_text is required")
		return
	}

	resumeText, err := ingestion.NormalizeDocument(req.ResumeText)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to normalize resume_text: "+err.Error())
		return
	}
	jobText, err := ingestion.NormalizeDocument(req.JobText)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "failed to normalize job_text: "+err.Error())
		return
	}

	extractor := extraction.NewExtractor(s.client)
	sheet, err := extractor.Extract(r.Context(), resumeText, jobText)
	if err != nil {
		log.Printf("Extraction failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, sheet)
}

// handleScore runs deterministic scoring on an extracted fact sheet
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.FactSheet == nil {
		s.errorResponse(w, http.StatusBadRequest, "fact_sheet is required")
		return
	}
	if req.Job == nil {
		s.errorResponse(w, http.StatusBadRequest, "job is required")
		return
	}
	if err := req.Job.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	score, err := scoring.Score(req.FactSheet, req.Job, s.scoringCfg)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, score)
}

// handleBrief generates a narrative briefing for an already-scored candidate.
// Identical concurrent requests for the same stage share one generation.
func (s *Server) handleBrief(w http.ResponseWriter, r *http.Request) {
	var req BriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.FactSheet == nil || req.Score == nil || req.Job == nil {
		s.errorResponse(w, http.StatusBadRequest, "fact_sheet, score, and job are required")
		return
	}
	mode := types.BriefingMode(req.Mode)
	if !mode.Valid() {
		s.errorResponse(w, http.StatusBadRequest, "mode must be \"prebrief\" or \"debrief\"")
		return
	}

	briefer := briefing.NewBriefer(s.client)
	generate := func(ctx context.Context) (*types.Briefing, error) {
		return briefer.Brief(ctx, req.Score, req.FactSheet, req.Job, req.Transcript, mode)
	}

	inputHash := pipeline.BriefingInputHash(req.ResumeText, req.Transcript, req.Job, req.Score.ConfigVersion)
	key := pipeline.BriefingKey(req.CandidateID, req.JobID, mode, inputHash)

	brief, err := s.cache.GetOrGenerate(r.Context(), key, generate)
	if err != nil {
		log.Printf("Briefing generation failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	if s.store != nil && req.StageID != uuid.Nil {
		if err := s.store.SaveBriefing(r.Context(), req.StageID, req.CandidateID, req.JobID, brief, inputHash); err != nil {
			log.Printf("Failed to persist briefing: %v", err)
		}
	}

	s.jsonResponse(w, http.StatusOK, brief)
}

// handlePipelineRun executes the full extract-score-brief pipeline
func (s *Server) handlePipelineRun(w http.ResponseWriter, r *http.Request) {
	var req PipelineRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.ResumeText == "" {
		s.errorResponse(w, http.StatusBadRequest, "resume_text is required")
		return
	}
	if req.Job == nil {
		s.errorResponse(w, http.StatusBadRequest, "job is required")
		return
	}

	opts := pipeline.RunOptions{
		ResumeText:    req.ResumeText,
		JobText:       req.JobText,
		Job:           req.Job,
		Transcript:    req.Transcript,
		Mode:          types.BriefingMode(req.Mode),
		ScoringConfig: s.scoringCfg,
		CandidateID:   req.CandidateID,
		JobID:         req.JobID,
		StageID:       req.StageID,
		Store:         s.store,
	}

	result, err := pipeline.Run(r.Context(), s.client, opts)
	if err != nil {
		log.Printf("Pipeline run failed: %v", err)
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := PipelineRunResponse{
		FactSheet: result.FactSheet,
		Score:     result.Score,
		Briefing:  result.Briefing,
	}
	if result.Degraded() {
		log.Printf("Pipeline degraded to score-only: %v", result.BriefingErr)
		resp.Notice = narrativeUnavailableNotice
	}

	s.jsonResponse(w, http.StatusOK, resp)
}

// handleGetEvaluation returns the stored evaluation for a (candidate, job) pair
func (s *Server) handleGetEvaluation(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorResponse(w, http.StatusNotImplemented, "server is running without a database")
		return
	}

	candidateID, err := uuid.Parse(r.PathValue("candidate_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid candidate_id")
		return
	}
	jobID, err := uuid.Parse(r.PathValue("job_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid job_id")
		return
	}

	sheet, score, err := s.store.GetEvaluation(r.Context(), candidateID, jobID)
	if errors.Is(err, db.ErrNotFound) {
		s.errorResponse(w, http.StatusNotFound, "evaluation not found")
		return
	}
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, EvaluationResponse{
		CandidateID: candidateID,
		JobID:       jobID,
		FactSheet:   sheet,
		Score:       score,
	})
}
