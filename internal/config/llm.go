package config

import (
	"time"

	"github.com/hirely/pluto/internal/llm"
)

// LLMConfig builds the model-call configuration from the file config,
// overlaying the per-call timeout on the client defaults. A nil receiver or
// an unset timeout yields the defaults unchanged.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultGeminiConfig()
	if c != nil && c.CallTimeoutSec > 0 {
		cfg.CallTimeout = time.Duration(c.CallTimeoutSec) * time.Second
	}
	return cfg
}
