package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultGeminiConfig(t *testing.T) {
	cfg := DefaultGeminiConfig()

	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", cfg.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", cfg.GetModel(TierAdvanced))
	assert.Equal(t, DefaultCallTimeout, cfg.Timeout())
}

func TestGetModel_FallbackChain(t *testing.T) {
	cfg := &Config{Models: map[ModelTier]string{TierStandard: "standard-model"}}
	assert.Equal(t, "standard-model", cfg.GetModel(TierAdvanced))

	cfg = &Config{Models: map[ModelTier]string{TierLite: "lite-model"}}
	assert.Equal(t, "lite-model", cfg.GetModel(TierAdvanced))

	cfg = &Config{Models: map[ModelTier]string{}}
	assert.Equal(t, "", cfg.GetModel(TierAdvanced))
}

func TestTimeout_DefaultWhenUnset(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, DefaultCallTimeout, cfg.Timeout())

	cfg.CallTimeout = 5 * time.Second
	assert.Equal(t, 5*time.Second, cfg.Timeout())
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	original := DefaultGeminiConfig()
	modified := original.WithModel(TierAdvanced, "custom-model")

	assert.Equal(t, "custom-model", modified.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-pro", original.GetModel(TierAdvanced))
	assert.Equal(t, original.CallTimeout, modified.CallTimeout)
}
