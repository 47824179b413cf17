// Streaming event types for incremental completions
package llm

// StreamEvent represents a single event in a streaming response
type StreamEvent struct {
	Type         string `json:"type"` // "delta", "done", "error"
	Delta        string `json:"delta,omitempty"`
	FinishReason string `json:"finish_reason,omitempty"`
	Error        *Error `json:"error,omitempty"`
}

// IsDelta returns true if this is a delta event
func (e StreamEvent) IsDelta() bool {
	return e.Type == "delta"
}

// IsDone returns true if this is a done event
func (e StreamEvent) IsDone() bool {
	return e.Type == "done"
}

// IsError returns true if this is an error event
func (e StreamEvent) IsError() bool {
	return e.Type == "error" && e.Error != nil
}

// NewDeltaEvent creates a new delta stream event
func NewDeltaEvent(text string) StreamEvent {
	return StreamEvent{Type: "delta", Delta: text}
}

// NewDoneEvent creates a new done stream event
func NewDoneEvent(finishReason string) StreamEvent {
	return StreamEvent{Type: "done", FinishReason: finishReason}
}

// NewErrorEvent creates a new error stream event
func NewErrorEvent(err *Error) StreamEvent {
	return StreamEvent{Type: "error", Error: err}
}
