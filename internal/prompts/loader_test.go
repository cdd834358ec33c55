package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompts(t *testing.T) {
	tests := []struct {
		file string
		key  string
	}{
		{"extraction.json", "extract-fact-sheet"},
		{"extraction.json", "job-context-section"},
		{"extraction.json", "retry-correction"},
		{"briefing.json", "generate-briefing"},
		{"briefing.json", "transcript-section"},
		{"briefing.json", "retry-correction"},
	}

	for _, tt := range tests {
		prompt, err := Get(tt.file, tt.key)
		require.NoErrorf(t, err, "%s/%s", tt.file, tt.key)
		assert.NotEmpty(t, prompt)
	}
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("extraction.json", "no-such-prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no-such-prompt")

	var promptErr *PromptError
	require.ErrorAs(t, err, &promptErr)
	assert.Equal(t, "extraction.json", promptErr.File)
	assert.Equal(t, "no-such-prompt", promptErr.Key)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	require.Error(t, err)

	var promptErr *PromptError
	require.ErrorAs(t, err, &promptErr)
	assert.Equal(t, "missing.json", promptErr.File)
	assert.Error(t, promptErr.Unwrap())
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("extraction.json", "no-such-prompt")
	})
}

func TestFormat(t *testing.T) {
	got := Format("Hello {{.Name}}, score is {{.Score}}. {{.Name}} again.", map[string]string{
		"Name":  "Jane",
		"Score": "72",
	})
	assert.Equal(t, "Hello Jane, score is 72. Jane again.", got)
}

func TestFormat_MissingPlaceholderLeftIntact(t *testing.T) {
	got := Format("Hello {{.Name}}", map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", got)
}

func TestExtractionPromptMentionsEveryField(t *testing.T) {
	prompt := MustGet("extraction.json", "extract-fact-sheet")

	for _, field := range []string{
		"years_experience", "skills", "industries", "is_founder",
		"leadership_experience", "recent_promotion", "sold_to_finance",
		"quota_attainment", "communication_signal",
	} {
		assert.Containsf(t, prompt, field, "extraction prompt missing field %s", field)
	}
}

func TestBriefingPromptCarriesScoreAnchors(t *testing.T) {
	prompt := MustGet("briefing.json", "generate-briefing")
	assert.Contains(t, prompt, "{{.AlgoScore}}")
	assert.Contains(t, prompt, "{{.RequiredSkills}}")
	assert.Contains(t, prompt, "{{.FactSheet}}")
}

func TestClearCache(t *testing.T) {
	_, err := Get("extraction.json", "extract-fact-sheet")
	require.NoError(t, err)

	ClearCache()

	_, err = Get("extraction.json", "extract-fact-sheet")
	require.NoError(t, err)
}
