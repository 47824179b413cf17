// Package components exposes Bedrock text generation as workflow components.
//
// Each component is a small unit with typed input and output ports. Components
// communicate through a shared Scope: Authorize places a configured client in
// the scope, and the invocation components look it up by the same key. A
// workflow engine (or plain Go code) wires ports together and calls Execute in
// dependency order.
package components

import (
	"context"
	"sync"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// invokerKey is the scope key under which Authorize stores the client
const invokerKey = "bedrock_client"

// Component is a single executable workflow step
type Component interface {
	// Name returns the component's registered name
	Name() string
	// Execute runs the component against the shared scope
	Execute(ctx context.Context, scope *Scope) error
}

// Scope carries shared state between components in one workflow run
type Scope struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewScope creates an empty scope
func NewScope() *Scope {
	return &Scope{values: make(map[string]any)}
}

// Set stores a value under the given key
func (s *Scope) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Get returns the value stored under the given key
func (s *Scope) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

// SetInvoker stores the shared client used by the invocation components
func (s *Scope) SetInvoker(invoker llm.Invoker) {
	s.Set(invokerKey, invoker)
}

// Invoker returns the shared client, or an error when no Authorize component
// has run in this scope
func (s *Scope) Invoker() (llm.Invoker, error) {
	v, ok := s.Get(invokerKey)
	if !ok {
		return nil, &llm.Error{
			Code:    "not_authorized",
			Message: "bedrock client has not been authorized",
			Type:    llm.ErrorTypeAuthentication,
		}
	}
	invoker, ok := v.(llm.Invoker)
	if !ok {
		return nil, &llm.Error{
			Code:    "not_authorized",
			Message: "bedrock client has not been authorized",
			Type:    llm.ErrorTypeAuthentication,
		}
	}
	return invoker, nil
}
