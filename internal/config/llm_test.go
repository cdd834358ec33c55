package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirely/pluto/internal/llm"
)

func TestLLMConfig_AppliesTimeout(t *testing.T) {
	cfg := &Config{CallTimeoutSec: 45}

	llmCfg := cfg.LLMConfig()
	assert.Equal(t, 45*time.Second, llmCfg.CallTimeout)
	assert.Equal(t, 45*time.Second, llmCfg.Timeout())
}

func TestLLMConfig_DefaultsWhenUnset(t *testing.T) {
	cfg := &Config{}

	llmCfg := cfg.LLMConfig()
	assert.Equal(t, llm.DefaultCallTimeout, llmCfg.CallTimeout)
	assert.Equal(t, llm.DefaultGeminiConfig().Models, llmCfg.Models)
}

func TestLLMConfig_NilReceiver(t *testing.T) {
	var cfg *Config

	llmCfg := cfg.LLMConfig()
	require.NotNil(t, llmCfg)
	assert.Equal(t, llm.DefaultCallTimeout, llmCfg.CallTimeout)
}

func TestLLMConfig_LoadedFromFile(t *testing.T) {
	path := writeTempConfig(t, `{"call_timeout_sec": 10}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10*time.Second, cfg.LLMConfig().CallTimeout)
}
