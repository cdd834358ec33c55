package server

import (
	"errors"
	"net/http"

	"github.com/hirely/pluto/internal/briefing"
	"github.com/hirely/pluto/internal/extraction"
	"github.com/hirely/pluto/internal/schemas"
	"github.com/hirely/pluto/internal/scoring"
)

// HTTPStatus returns the appropriate HTTP status code for a pipeline error.
// Extraction failures map to 422 because the request was well-formed but the
// resume could not be processed into valid facts.
func HTTPStatus(err error) int {
	var extractionErr *extraction.ExtractionError
	var scoringErr *scoring.ScoringError
	var briefingErr *briefing.BriefingGenerationError
	var validationErr *schemas.ValidationError

	switch {
	case errors.As(err, &extractionErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &scoringErr):
		return http.StatusBadRequest
	case errors.As(err, &briefingErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
