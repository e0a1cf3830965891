package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-entity-extract/internal/llm"
)

func TestLoadConfigRequiresAPIKey(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_API_KEY")
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_API_URL", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("LLM_MAX_TOKENS", "")
	t.Setenv("LLM_TEMPERATURE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.DefaultEndpoint, cfg.APIURL)
	assert.Equal(t, 2048, cfg.MaxTokens)
	assert.Nil(t, cfg.Temperature, "temperature must default to unset")
	assert.NotEmpty(t, cfg.Model)
	assert.NotEmpty(t, cfg.SystemPrompt)
}

func TestLoadConfigProviderResolution(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_API_URL", "")
	t.Setenv("LLM_PROVIDER", "groq")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://api.groq.com/openai/v1/chat/completions", cfg.APIURL)
}

func TestLoadConfigExplicitURLWins(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_PROVIDER", "groq")
	t.Setenv("LLM_API_URL", "http://localhost:8080/v1/chat/completions")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/v1/chat/completions", cfg.APIURL)
}

func TestLoadConfigUnknownProvider(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_API_URL", "")
	t.Setenv("LLM_PROVIDER", "telegraph")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigTemperature(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_TEMPERATURE", "0.2")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg.Temperature)
	assert.Equal(t, 0.2, *cfg.Temperature)
}

func TestLoadConfigBadNumbers(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_TEMPERATURE", "warm")

	_, err := LoadConfig()
	require.Error(t, err)

	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("LLM_MAX_TOKENS", "lots")

	_, err = LoadConfig()
	require.Error(t, err)
}
