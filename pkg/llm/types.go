// Core request and response types
package llm

// InvokeRequest represents a text-generation request (model-family agnostic).
// Chat invocations carry Messages; raw completions carry Prompt. MaxTokens
// and Temperature are required for every invocation, TopK and TopP are
// optional and fall back to per-family defaults in the codec.
type InvokeRequest struct {
	Model         string       `json:"model"`
	Messages      Conversation `json:"messages,omitempty"`
	Prompt        string       `json:"prompt,omitempty"`
	MaxTokens     int          `json:"max_tokens"`
	Temperature   float32      `json:"temperature"`
	TopK          *int         `json:"top_k,omitempty"`
	TopP          *float32     `json:"top_p,omitempty"`
	StopSequences []string     `json:"stop_sequences,omitempty"`
}

// IsChat reports whether the request carries a conversation rather than a
// raw prompt
func (r InvokeRequest) IsChat() bool {
	return len(r.Messages) > 0
}

// Validate checks the request invariants shared by all model families
func (r InvokeRequest) Validate() error {
	if r.Model == "" {
		return NewValidationError("missing_model", "model is required")
	}
	if r.MaxTokens <= 0 {
		return NewValidationError("missing_max_tokens", "max_tokens must be positive")
	}
	if r.Temperature < 0 {
		return NewValidationError("invalid_temperature", "temperature must not be negative")
	}
	if !r.IsChat() && r.Prompt == "" {
		return NewValidationError("missing_prompt", "prompt or messages are required")
	}
	return r.Messages.Validate()
}

// InvokeResponse represents a text-generation response
type InvokeResponse struct {
	ID         string `json:"id"`
	Model      string `json:"model"`
	Completion string `json:"completion"`
	StopReason string `json:"stop_reason,omitempty"`
	Usage      Usage  `json:"usage,omitempty"`
}

// Usage represents token usage information when the model reports it
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
