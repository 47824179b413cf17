package llm

import (
	"context"
	"fmt"
)

// EnhancedInvoker wraps an Invoker with a middleware chain
type EnhancedInvoker struct {
	inner Invoker
	chain *MiddlewareChain
}

// NewEnhancedInvoker creates a new invoker with middleware
func NewEnhancedInvoker(inner Invoker, chain []Middleware) *EnhancedInvoker {
	return &EnhancedInvoker{
		inner: inner,
		chain: NewMiddlewareChain(chain),
	}
}

// Invoke implements Invoker with middleware processing
func (e *EnhancedInvoker) Invoke(ctx context.Context, req InvokeRequest) (*InvokeResponse, error) {
	processedReq, err := e.chain.ProcessRequest(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("middleware request processing failed: %w", err)
	}

	resp, err := e.inner.Invoke(ctx, *processedReq)

	processedResp, _ := e.chain.ProcessResponse(ctx, processedReq, resp, err)

	return processedResp, err
}

// StreamInvoke implements Invoker with middleware processing for streaming
func (e *EnhancedInvoker) StreamInvoke(ctx context.Context, req InvokeRequest) (<-chan StreamEvent, error) {
	processedReq, err := e.chain.ProcessRequest(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("middleware request processing failed: %w", err)
	}

	eventChan, err := e.inner.StreamInvoke(ctx, *processedReq)
	if err != nil {
		// Process error through middleware
		_, _ = e.chain.ProcessResponse(ctx, processedReq, nil, err)
		return nil, err
	}

	processedChan := make(chan StreamEvent)

	go func() {
		defer close(processedChan)

		for event := range eventChan {
			processedEvent, processErr := e.chain.ProcessStreamEvent(ctx, processedReq, event)
			if processErr != nil {
				// Send original event if processing fails
				processedEvent = event
			}

			select {
			case processedChan <- processedEvent:
			case <-ctx.Done():
				return
			}
		}

		// Process final response through middleware (for completion tracking)
		_, _ = e.chain.ProcessResponse(ctx, processedReq, nil, nil)
	}()

	return processedChan, nil
}

// GetRemote implements Invoker
func (e *EnhancedInvoker) GetRemote() ClientRemoteInfo {
	return e.inner.GetRemote()
}

// GetModelInfo implements Invoker
func (e *EnhancedInvoker) GetModelInfo(model string) ModelInfo {
	return e.inner.GetModelInfo(model)
}

// Close implements Invoker
func (e *EnhancedInvoker) Close() error {
	return e.inner.Close()
}

// AddMiddleware adds a middleware to the invoker's chain
func (e *EnhancedInvoker) AddMiddleware(middleware Middleware) {
	e.chain.AddMiddleware(middleware)
}

// RemoveMiddleware removes a middleware from the invoker's chain
func (e *EnhancedInvoker) RemoveMiddleware(name string) bool {
	return e.chain.RemoveMiddleware(name)
}

// GetMiddlewareNames returns the names of all middleware in the invoker's chain
func (e *EnhancedInvoker) GetMiddlewareNames() []string {
	return e.chain.GetMiddlewareNames()
}

// InvokerWithMiddleware wraps an existing invoker with the middleware system.
// This is the main entry point for adding middleware to invokers.
func InvokerWithMiddleware(inner Invoker, chain []Middleware) Invoker {
	// If the invoker is already enhanced, add middleware to the existing chain
	if enhanced, ok := inner.(*EnhancedInvoker); ok {
		for _, middleware := range chain {
			enhanced.AddMiddleware(middleware)
		}
		return enhanced
	}

	return NewEnhancedInvoker(inner, chain)
}
