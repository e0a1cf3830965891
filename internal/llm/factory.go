package llm

import "fmt"

// DefaultEndpoint is the chat-completions URL used when no provider or URL
// is configured. OpenRouter fronts many models behind one OpenAI-compatible
// API.
const DefaultEndpoint = "https://openrouter.ai/api/v1/chat/completions"

// ResolveEndpoint returns the chat-completions URL for a named provider.
// Supported providers: "openrouter" (default), "groq", "openai", "local".
func ResolveEndpoint(provider string) (string, error) {
	switch provider {
	case "", "openrouter":
		return DefaultEndpoint, nil
	case "groq":
		return "https://api.groq.com/openai/v1/chat/completions", nil
	case "openai":
		return "https://api.openai.com/v1/chat/completions", nil
	case "local":
		// Ollama and llama.cpp expose an OpenAI-compatible API here.
		return "http://localhost:11434/v1/chat/completions", nil
	default:
		return "", fmt.Errorf("unsupported LLM provider: %q", provider)
	}
}
