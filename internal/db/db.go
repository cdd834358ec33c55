// Package db provides PostgreSQL persistence for pipeline outputs. The
// pipeline stages themselves are storage-free; this store is the external
// collaborator that owns upsert semantics on (candidate_id, job_id) for
// evaluations and per-stage briefings.
package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hirely/pluto/internal/types"
)

// ErrNotFound indicates no stored record matches the lookup.
var ErrNotFound = errors.New("record not found")

// Store wraps a PostgreSQL connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database.
func Connect(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{pool: pool}, nil
}

// Close closes the connection pool.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// SaveJobRequirements stores a job's requirements as a new immutable version
// and returns the version number. Requirements referenced by past scores are
// never mutated in place; revisions append.
func (s *Store) SaveJobRequirements(ctx context.Context, jobID uuid.UUID, job *types.JobRequirements) (int, error) {
	encoded, err := json.Marshal(job)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal job requirements: %w", err)
	}

	var version int
	err = s.pool.QueryRow(ctx,
		`INSERT INTO job_requirement_versions (job_id, version, requirements)
		 VALUES ($1, COALESCE((SELECT MAX(version) FROM job_requirement_versions WHERE job_id = $1), 0) + 1, $2)
		 RETURNING version`,
		jobID, encoded,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to save job requirements: %w", err)
	}
	return version, nil
}

// GetJobRequirements loads the latest requirements version for a job.
func (s *Store) GetJobRequirements(ctx context.Context, jobID uuid.UUID) (*types.JobRequirements, error) {
	var encoded []byte
	err := s.pool.QueryRow(ctx,
		`SELECT requirements FROM job_requirement_versions
		 WHERE job_id = $1 ORDER BY version DESC LIMIT 1`,
		jobID,
	).Scan(&encoded)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load job requirements: %w", err)
	}

	var job types.JobRequirements
	if err := json.Unmarshal(encoded, &job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job requirements: %w", err)
	}
	return &job, nil
}

// SaveEvaluation upserts the fact sheet and score for a (candidate, job)
// pair. A regenerated fact sheet replaces the previous one wholesale; scores
// are never blended with stored values.
func (s *Store) SaveEvaluation(ctx context.Context, candidateID, jobID uuid.UUID, sheet *types.FactSheet, score *types.ScoreResult) error {
	sheetJSON, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal fact sheet: %w", err)
	}
	scoreJSON, err := json.Marshal(score)
	if err != nil {
		return fmt.Errorf("failed to marshal score result: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO evaluations (candidate_id, job_id, fact_sheet, score, config_version)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (candidate_id, job_id)
		 DO UPDATE SET fact_sheet = $3, score = $4, config_version = $5, updated_at = NOW()`,
		candidateID, jobID, sheetJSON, scoreJSON, score.ConfigVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to save evaluation: %w", err)
	}
	return nil
}

// GetEvaluation loads the stored fact sheet and score for a (candidate, job)
// pair.
func (s *Store) GetEvaluation(ctx context.Context, candidateID, jobID uuid.UUID) (*types.FactSheet, *types.ScoreResult, error) {
	var sheetJSON, scoreJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT fact_sheet, score FROM evaluations
		 WHERE candidate_id = $1 AND job_id = $2`,
		candidateID, jobID,
	).Scan(&sheetJSON, &scoreJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load evaluation: %w", err)
	}

	var sheet types.FactSheet
	if err := json.Unmarshal(sheetJSON, &sheet); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal fact sheet: %w", err)
	}
	var score types.ScoreResult
	if err := json.Unmarshal(scoreJSON, &score); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal score result: %w", err)
	}
	return &sheet, &score, nil
}

// SaveBriefing upserts the briefing owned by an interview stage. The input
// hash records what the briefing was generated from; a stored briefing is
// reusable only while the hash still matches.
func (s *Store) SaveBriefing(ctx context.Context, stageID, candidateID, jobID uuid.UUID, brief *types.Briefing, inputHash string) error {
	encoded, err := json.Marshal(brief)
	if err != nil {
		return fmt.Errorf("failed to marshal briefing: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO briefings (stage_id, candidate_id, job_id, mode, content, input_hash)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (stage_id, mode)
		 DO UPDATE SET content = $5, input_hash = $6, created_at = NOW()`,
		stageID, candidateID, jobID, string(brief.Mode), encoded, inputHash,
	)
	if err != nil {
		return fmt.Errorf("failed to save briefing: %w", err)
	}
	return nil
}

// GetBriefing loads a stage's briefing if one exists for the given mode and
// the stored input hash still matches; a stale hash reads as ErrNotFound so
// the caller regenerates.
func (s *Store) GetBriefing(ctx context.Context, stageID uuid.UUID, mode types.BriefingMode, inputHash string) (*types.Briefing, error) {
	var encoded []byte
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM briefings
		 WHERE stage_id = $1 AND mode = $2 AND input_hash = $3`,
		stageID, string(mode), inputHash,
	).Scan(&encoded)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load briefing: %w", err)
	}

	var brief types.Briefing
	if err := json.Unmarshal(encoded, &brief); err != nil {
		return nil, fmt.Errorf("failed to unmarshal briefing: %w", err)
	}
	return &brief, nil
}
