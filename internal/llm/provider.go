package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
// Consumers call Generate with a Request and receive structured JSON.
type Provider interface {
	// Generate sends a prompt to the LLM and returns a structured response.
	// The request's Schema field, when set, instructs the provider to return
	// JSON conforming to that schema. The response Content will be the
	// validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation, oldest first. Oracle calls are
	// single-turn and carry one user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	// When nil, Content is the text reply encoded as a JSON string.
	Schema *Schema

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (schema name for OpenAI, cache key for
	// validation). Kebab-case, e.g. "daily-task".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. With a Schema it is the validated
	// JSON object, with any markdown fence stripped. Without one it is the
	// text reply encoded as a JSON string.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped: StopEnd or
	// StopMaxTokens for unstructured replies.
	StopReason string
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopFiltered  = "filtered"
)

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// reply is what a provider adapter extracted from its SDK response.
type reply struct {
	text   string
	model  string
	stop   string
	reason string // provider label when stop is StopFiltered
	usage  Usage
}

// finish turns an adapter reply into a Response. Filtered replies and
// truncated structured replies are errors.
func finish(req Request, r reply) (*Response, error) {
	switch r.stop {
	case StopFiltered:
		return nil, &ErrContentFiltered{Reason: r.reason}
	case StopMaxTokens:
		if req.Schema != nil {
			return nil, &ErrMaxTokensExceeded{Content: json.RawMessage(r.text)}
		}
	}

	var content json.RawMessage
	if req.Schema != nil {
		content = extractJSON(r.text)
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	} else {
		b, err := json.Marshal(r.text)
		if err != nil {
			return nil, &ErrInvalidResponse{Err: err}
		}
		content = b
	}

	return &Response{
		Content:    content,
		Usage:      r.usage,
		Model:      r.model,
		StopReason: r.stop,
	}, nil
}
