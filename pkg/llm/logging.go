// Structured logging middleware
package llm

import (
	"context"
	"log/slog"
)

// LoggingMiddleware logs invocations through a slog.Logger. The library
// itself never logs; hosts opt in by adding this middleware to the chain.
type LoggingMiddleware struct {
	logger *slog.Logger
}

// NewLoggingMiddleware creates a logging middleware. A nil logger falls
// back to slog.Default().
func NewLoggingMiddleware(logger *slog.Logger) *LoggingMiddleware {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingMiddleware{logger: logger}
}

// Name implements Middleware
func (l *LoggingMiddleware) Name() string {
	return "logging"
}

// ProcessRequest logs the outgoing request
func (l *LoggingMiddleware) ProcessRequest(ctx context.Context, req *InvokeRequest) (*InvokeRequest, error) {
	l.logger.DebugContext(ctx, "invoking model",
		"model", req.Model,
		"chat", req.IsChat(),
		"messages", len(req.Messages),
		"max_tokens", req.MaxTokens)
	return req, nil
}

// ProcessResponse logs the outcome of the invocation
func (l *LoggingMiddleware) ProcessResponse(ctx context.Context, req *InvokeRequest, resp *InvokeResponse, err error) (*InvokeResponse, error) {
	switch {
	case err != nil:
		l.logger.ErrorContext(ctx, "model invocation failed",
			"model", req.Model,
			"error", err)
	case resp != nil:
		l.logger.DebugContext(ctx, "model invocation succeeded",
			"model", req.Model,
			"stop_reason", resp.StopReason,
			"completion_tokens", resp.Usage.CompletionTokens)
	}
	return resp, nil
}

// ProcessStreamEvent logs stream errors, passing every event through
func (l *LoggingMiddleware) ProcessStreamEvent(ctx context.Context, req *InvokeRequest, event StreamEvent) (StreamEvent, error) {
	if event.IsError() {
		l.logger.ErrorContext(ctx, "stream error",
			"model", req.Model,
			"error", event.Error)
	}
	return event, nil
}

var _ Middleware = (*LoggingMiddleware)(nil)
