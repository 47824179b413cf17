// Invoker interfaces and remote status types
package llm

import (
	"context"
	"time"
)

// DefaultHealthCheckInterval defines how often health checks should be refreshed
// to avoid excessive API calls to the remote service
const DefaultHealthCheckInterval = 5 * time.Minute

// ClientRemoteInfo represents information about a remote client
type ClientRemoteInfo struct {
	Name   string
	Status *ClientRemoteInfoStatus
}

// ClientRemoteInfoStatus represents the status of a remote client
type ClientRemoteInfoStatus struct {
	Healthy     *bool
	LastChecked *time.Time
}

// Invoker defines the core interface components use to run text generation
type Invoker interface {
	// Invoke performs a blocking text-generation request
	Invoke(ctx context.Context, req InvokeRequest) (*InvokeResponse, error)

	// StreamInvoke performs a streaming text-generation request
	StreamInvoke(ctx context.Context, req InvokeRequest) (<-chan StreamEvent, error)

	// GetRemote returns information about the remote service
	GetRemote() ClientRemoteInfo

	// GetModelInfo returns information about the given model
	GetModelInfo(model string) ModelInfo

	// Close cleans up any resources used by the invoker
	Close() error
}

// ModelLister is implemented by invokers that can enumerate the foundation
// models available to the caller
type ModelLister interface {
	// ListModels returns the available model ids, optionally filtered by
	// provider name ("anthropic", "amazon", ...)
	ListModels(ctx context.Context, provider string) ([]string, error)
}
