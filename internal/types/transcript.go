package types

import (
	"fmt"
	"strings"
)

// TranscriptTurn is one speaker-labeled turn of an interview transcript.
type TranscriptTurn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Transcript is an ordered sequence of interview turns, consumed by debrief
// generation.
type Transcript struct {
	Turns []TranscriptTurn `json:"turns"`
}

// Empty reports whether the transcript carries no turns.
func (t *Transcript) Empty() bool {
	return t == nil || len(t.Turns) == 0
}

// Render formats the transcript as speaker-prefixed lines for prompt
// embedding.
func (t *Transcript) Render() string {
	if t.Empty() {
		return ""
	}
	var sb strings.Builder
	for _, turn := range t.Turns {
		speaker := turn.Speaker
		if speaker == "" {
			speaker = "unknown"
		}
		sb.WriteString(fmt.Sprintf("%s: %s\n", speaker, turn.Text))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
