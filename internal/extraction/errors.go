package extraction

import "fmt"

// ExtractionError indicates the extraction stage could not produce a valid
// fact sheet: the input text was empty/unreadable, or the generative output
// failed schema validation even after the corrective retry.
//
// The error message never embeds raw model output or prompt text; those stay
// on the Cause chain for logs.
type ExtractionError struct {
	Message  string
	Attempts int
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Attempts > 0 {
		return fmt.Sprintf("extraction failed after %d attempt(s): %s", e.Attempts, e.Message)
	}
	return fmt.Sprintf("extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
