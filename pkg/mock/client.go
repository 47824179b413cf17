// Package mock provides a scriptable llm.Invoker for tests. Responses,
// errors and stream chunks are queued up front and consumed in order, and
// every request is recorded for later assertions.
package mock

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// Client is a mock implementation of llm.Invoker and llm.ModelLister
type Client struct {
	mu sync.Mutex

	responses []*llm.InvokeResponse
	streams   [][]string
	errs      []error
	models    []string
	latency   time.Duration

	requests []llm.InvokeRequest
}

// NewClient creates a mock client with a single default response
func NewClient() *Client {
	return &Client{}
}

// WithSimpleResponse queues a completion to return from the next Invoke call
func (c *Client) WithSimpleResponse(text string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.responses = append(c.responses, &llm.InvokeResponse{
		ID:         "mock-response",
		Completion: text,
		StopReason: "stop",
	})
	return c
}

// WithError queues an error to return from the next call
func (c *Client) WithError(err error) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err)
	return c
}

// WithStreamResponse queues the chunks emitted by the next StreamInvoke call
func (c *Client) WithStreamResponse(chunks ...string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.streams = append(c.streams, chunks)
	return c
}

// WithModels sets the model ids returned by ListModels
func (c *Client) WithModels(ids ...string) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models = ids
	return c
}

// WithLatency makes every call sleep before responding
func (c *Client) WithLatency(d time.Duration) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.latency = d
	return c
}

func (c *Client) Invoke(ctx context.Context, req llm.InvokeRequest) (*llm.InvokeResponse, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)
	latency := c.latency

	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		c.mu.Unlock()
		return nil, err
	}

	var resp *llm.InvokeResponse
	if len(c.responses) > 0 {
		resp = c.responses[0]
		c.responses = c.responses[1:]
	} else {
		resp = &llm.InvokeResponse{
			ID:         "mock-response",
			Completion: "mock completion",
			StopReason: "stop",
		}
	}
	c.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	out := *resp
	out.Model = req.Model
	return &out, nil
}

func (c *Client) StreamInvoke(ctx context.Context, req llm.InvokeRequest) (<-chan llm.StreamEvent, error) {
	c.mu.Lock()
	c.requests = append(c.requests, req)

	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		c.mu.Unlock()
		return nil, err
	}

	chunks := []string{"mock ", "completion"}
	if len(c.streams) > 0 {
		chunks = c.streams[0]
		c.streams = c.streams[1:]
	}
	latency := c.latency
	c.mu.Unlock()

	ch := make(chan llm.StreamEvent, len(chunks)+1)
	go func() {
		defer close(ch)
		for _, chunk := range chunks {
			if latency > 0 {
				select {
				case <-time.After(latency):
				case <-ctx.Done():
					return
				}
			}
			select {
			case ch <- llm.NewDeltaEvent(chunk):
			case <-ctx.Done():
				return
			}
		}
		ch <- llm.NewDoneEvent("stop")
	}()

	return ch, nil
}

func (c *Client) ListModels(ctx context.Context, provider string) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.errs) > 0 {
		err := c.errs[0]
		c.errs = c.errs[1:]
		return nil, err
	}

	if provider == "" {
		return append([]string(nil), c.models...), nil
	}
	var filtered []string
	for _, id := range c.models {
		if strings.HasPrefix(id, strings.ToLower(provider)+".") {
			filtered = append(filtered, id)
		}
	}
	return filtered, nil
}

func (c *Client) GetRemote() llm.ClientRemoteInfo {
	healthy := true
	now := time.Now()
	return llm.ClientRemoteInfo{
		Name: "mock",
		Status: &llm.ClientRemoteInfoStatus{
			Healthy:     &healthy,
			LastChecked: &now,
		},
	}
}

func (c *Client) GetModelInfo(model string) llm.ModelInfo {
	return llm.ModelInfo{
		Name:              model,
		Provider:          "mock",
		Family:            llm.FamilyOf(model),
		MaxTokens:         4096,
		SupportsChat:      true,
		SupportsStreaming: true,
	}
}

func (c *Client) Close() error { return nil }

// Requests returns a copy of every request seen so far
func (c *Client) Requests() []llm.InvokeRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]llm.InvokeRequest(nil), c.requests...)
}

// CallCount returns the number of Invoke and StreamInvoke calls
func (c *Client) CallCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

// LastRequest returns the most recent request, or nil when none were made
func (c *Client) LastRequest() *llm.InvokeRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.requests) == 0 {
		return nil
	}
	req := c.requests[len(c.requests)-1]
	return &req
}

var (
	_ llm.Invoker     = (*Client)(nil)
	_ llm.ModelLister = (*Client)(nil)
)
