package scoring

import "fmt"

// ScoringError indicates structurally invalid scoring input: a negative
// experience value, a malformed enum, a bad config. It is never raised for
// low-quality candidates, who simply receive a low score. When this error
// appears at runtime it signals an upstream contract violation, not a
// user-facing condition.
type ScoringError struct {
	Field   string
	Message string
}

func (e *ScoringError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("scoring input invalid: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("scoring input invalid: %s", e.Message)
}
