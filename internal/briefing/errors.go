package briefing

import "fmt"

// BriefingGenerationError indicates the briefing stage could not produce a
// valid narrative after the corrective retry (generation failure, timeout, or
// schema-invalid output). It is recoverable: callers may degrade to showing
// the ScoreResult without narrative.
type BriefingGenerationError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *BriefingGenerationError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("briefing generation failed after %d attempt(s): %s", e.Attempts, e.Message)
	}
	return fmt.Sprintf("briefing generation failed: %s", e.Message)
}

func (e *BriefingGenerationError) Unwrap() error {
	return e.Cause
}
