package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// ResponseFormatJSON asks the model to constrain its output to a JSON object.
const ResponseFormatJSON = "json"

// Config holds the construction-time settings for a ChatClient. The zero
// value is not usable: APIKey and Model must be set.
type Config struct {
	APIKey       string
	Model        string
	APIURL       string   // blank means the default OpenRouter endpoint
	SystemPrompt string   // blank means no system message is sent
	MaxTokens    int      // 0 means 2048
	Temperature  *float64 // nil omits temperature so the remote default applies
	// ResponseFormat set to ResponseFormatJSON adds a structured-output
	// directive to each request. Any other value sends none.
	ResponseFormat string
}

const defaultMaxTokens = 2048

// ChatClient implements Client against any OpenAI-compatible
// chat-completions endpoint.
type ChatClient struct {
	cfg  Config
	http *http.Client
}

// NewChatClient creates a client for the endpoint described by cfg.
func NewChatClient(cfg Config) *ChatClient {
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultEndpoint
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	return &ChatClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// chatRequest is the request payload for an OpenAI-compatible API.
type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

// chatResponse is the response payload from an OpenAI-compatible API.
// Content is a pointer so a present-but-empty string can be told apart from
// an absent content field.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// buildMessages assembles the outbound conversation: an optional leading
// system message, then exactly one user message with the prompt.
func (c *ChatClient) buildMessages(prompt string) []Message {
	messages := make([]Message, 0, 2)
	if strings.TrimSpace(c.cfg.SystemPrompt) != "" {
		messages = append(messages, Message{Role: "system", Content: c.cfg.SystemPrompt})
	}
	messages = append(messages, Message{Role: "user", Content: prompt})
	return messages
}

// Complete sends the prompt to the model and returns the generated text.
// A missing API key or a blank prompt fails before any network I/O. The call
// is a single blocking round trip: no retry, no backoff, even on 429.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", &ConfigError{Reason: "API key is not set"}
	}
	if strings.TrimSpace(prompt) == "" {
		return "", &InputError{Reason: "prompt is empty"}
	}

	reqBody := chatRequest{
		Model:       c.cfg.Model,
		Messages:    c.buildMessages(prompt),
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	if c.cfg.ResponseFormat == ResponseFormatJSON {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", &TransportError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL,
		bytes.NewBuffer(data))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("llm: endpoint returned %d: %s", resp.StatusCode, string(body))
		return "", &TransportError{StatusCode: resp.StatusCode, RawBody: string(body)}
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		log.Printf("llm: unparseable response body: %s", string(body))
		return "", &ShapeError{RawBody: string(body)}
	}
	if len(chatResp.Choices) == 0 || chatResp.Choices[0].Message.Content == nil {
		log.Printf("llm: response missing message content: %s", string(body))
		return "", &ShapeError{RawBody: string(body)}
	}
	return *chatResp.Choices[0].Message.Content, nil
}
