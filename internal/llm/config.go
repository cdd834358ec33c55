// Package llm provides centralized LLM configuration and client abstractions
// for the generative calls made by the extraction and briefing stages.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model.
type ModelTier string

const (
	// TierLite is for simple tasks: flag extraction, classification
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: schema-constrained extraction
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: narrative briefing synthesis
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider.
type Provider string

// Supported LLM providers.
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is the OpenAI provider (future)
	ProviderOpenAI Provider = "openai"
)

// DefaultCallTimeout bounds a single generative call. A timed-out call is
// treated the same as a validation failure by the stage retry policy.
const DefaultCallTimeout = 30 * time.Second

// Config holds the model configuration for the pipeline.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	CallTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration.
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		CallTimeout: DefaultCallTimeout,
	}
}

// GetModel returns the model name for a given tier, falling back to standard
// and then lite when the requested tier is not configured.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// Timeout returns the configured per-call timeout, or the default when unset.
func (c *Config) Timeout() time.Duration {
	if c.CallTimeout > 0 {
		return c.CallTimeout
	}
	return DefaultCallTimeout
}

// WithModel returns a copy of the config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		CallTimeout: c.CallTimeout,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
