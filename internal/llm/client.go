// Package llm provides a client for OpenAI-compatible chat-completion APIs.
package llm

import (
	"context"
	"fmt"
)

// Message represents a single message in a conversation.
type Message struct {
	Role    string `json:"role"`    // "system", "user", or "assistant"
	Content string `json:"content"` // text content
}

// Client is the interface implemented by chat-completion clients.
type Client interface {
	// Complete sends the prompt to the model and returns the generated text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ConfigError reports a misconfigured client, such as a missing API key.
// No request is attempted.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "llm config: " + e.Reason
}

// InputError reports unusable caller input, such as a blank prompt.
// No request is attempted.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return "llm input: " + e.Reason
}

// TransportError reports a failed round trip: a network fault or a non-2xx
// status. RawBody carries the endpoint's error body for inspection; it is
// empty when the request never completed.
type TransportError struct {
	StatusCode int // 0 when no response was received
	RawBody    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("llm transport: %v", e.Err)
	}
	return fmt.Sprintf("llm transport: status %d: %s", e.StatusCode, e.RawBody)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ShapeError reports a success status whose body does not carry the expected
// choices[0].message.content field. RawBody holds the body for inspection.
type ShapeError struct {
	RawBody string
}

func (e *ShapeError) Error() string {
	return "llm response: missing choices[0].message.content"
}
