package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"go-entity-extract/internal/llm"
)

// defaultSystemPrompt instructs the model to answer with the entity JSON
// shape the presentation layer expects.
const defaultSystemPrompt = `You are a named-entity extraction assistant. ` +
	`Extract every named entity from the user's text and respond with only a JSON object ` +
	`of the form {"entities": [{"text": "...", "type": "..."}]}. ` +
	`Use types such as PERSON, LOCATION, ORGANIZATION and DATE.`

// Config holds all configuration values
type Config struct {
	APIKey       string
	Model        string
	APIURL       string
	SystemPrompt string
	MaxTokens    int
	Temperature  *float64
	DatabaseURL  string // optional; enables the extraction history store
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	apiKey := os.Getenv("LLM_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("LLM_API_KEY environment variable is required")
	}

	apiURL := os.Getenv("LLM_API_URL")
	if apiURL == "" {
		resolved, err := llm.ResolveEndpoint(os.Getenv("LLM_PROVIDER"))
		if err != nil {
			return nil, err
		}
		apiURL = resolved
	}

	model := os.Getenv("LLM_MODEL")
	if model == "" {
		model = "meta-llama/llama-3.3-70b-instruct"
	}

	systemPrompt := os.Getenv("LLM_SYSTEM_PROMPT")
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	maxTokens := 2048
	if v := os.Getenv("LLM_MAX_TOKENS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_MAX_TOKENS %q: %w", v, err)
		}
		maxTokens = n
	}

	// Temperature stays nil unless set, so the remote default applies.
	var temperature *float64
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		t, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid LLM_TEMPERATURE %q: %w", v, err)
		}
		temperature = &t
	}

	return &Config{
		APIKey:       apiKey,
		Model:        model,
		APIURL:       apiURL,
		SystemPrompt: systemPrompt,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
	}, nil
}
