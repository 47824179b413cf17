// Retry support for model invocations with exponential backoff
package llm

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"math"
	"time"
)

// secureRandomFloat64 generates a cryptographically secure random float64 between 0 and 1
func secureRandomFloat64() (float64, error) {
	var bytes [8]byte
	_, err := rand.Read(bytes[:])
	if err != nil {
		return 0, err
	}
	// Convert bytes to uint64, then to float64 between 0 and 1
	return float64(binary.BigEndian.Uint64(bytes[:])) / float64(^uint64(0)), nil
}

// RetryConfig defines configuration options for the retry mechanism
type RetryConfig struct {
	// MaxRetries is the maximum number of retry attempts (default: 3).
	// Total requests = MaxRetries + 1 (original attempt).
	MaxRetries int

	// BaseDelay is the initial delay between retries (default: 1 second).
	// Each retry multiplies this by BackoffFactor.
	BaseDelay time.Duration

	// MaxDelay caps the maximum delay between retries (default: 60 seconds).
	MaxDelay time.Duration

	// BackoffFactor multiplies the delay after each retry (default: 2.0).
	BackoffFactor float64

	// Jitter adds randomness to delays to prevent thundering herd (default: true).
	// Multiplies delay by random factor between 0.5 and 1.5.
	Jitter bool

	// RetryableErrors lists additional error codes that should trigger retries.
	RetryableErrors []string
}

// DefaultRetryConfig returns a sensible default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      3,
		BaseDelay:       1 * time.Second,
		MaxDelay:        60 * time.Second,
		BackoffFactor:   2.0,
		Jitter:          true,
		RetryableErrors: []string{"rate_limit_exceeded"},
	}
}

// RetryableInvoker wraps an Invoker with retry functionality
type RetryableInvoker struct {
	inner  Invoker
	config RetryConfig
}

// RetryInvoker creates a new retryable wrapper around any Invoker.
// It automatically retries requests when throttling errors (HTTP 429),
// rate limit errors, or temporary server errors (5xx) occur, using
// exponential backoff with optional jitter.
//
// Streaming calls retry the initial request only; once the event channel is
// open the stream is the caller's to consume.
func RetryInvoker(inner Invoker, config ...RetryConfig) Invoker {
	cfg := DefaultRetryConfig()
	if len(config) > 0 {
		cfg = config[0]
		// Ensure sane defaults for zero values
		if cfg.MaxRetries <= 0 {
			cfg.MaxRetries = 3
		}
		if cfg.BaseDelay <= 0 {
			cfg.BaseDelay = 1 * time.Second
		}
		if cfg.MaxDelay <= 0 {
			cfg.MaxDelay = 60 * time.Second
		}
		if cfg.BackoffFactor <= 0 {
			cfg.BackoffFactor = 2.0
		}
		if cfg.RetryableErrors == nil {
			cfg.RetryableErrors = []string{"rate_limit_exceeded"}
		}
	}

	return &RetryableInvoker{
		inner:  inner,
		config: cfg,
	}
}

// Invoke executes the invocation with retry logic
func (r *RetryableInvoker) Invoke(ctx context.Context, req InvokeRequest) (*InvokeResponse, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		resp, err := r.inner.Invoke(ctx, req)
		if err == nil {
			return resp, nil
		}

		lastErr = err

		// Don't retry on the last attempt
		if attempt == r.config.MaxRetries {
			break
		}

		if !r.isRetryableError(err) {
			return nil, err
		}

		if err := r.sleep(ctx, r.calculateDelay(attempt)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// StreamInvoke retries the stream setup, then hands the channel through
func (r *RetryableInvoker) StreamInvoke(ctx context.Context, req InvokeRequest) (<-chan StreamEvent, error) {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		ch, err := r.inner.StreamInvoke(ctx, req)
		if err == nil {
			return ch, nil
		}

		lastErr = err

		if attempt == r.config.MaxRetries {
			break
		}

		if !r.isRetryableError(err) {
			return nil, err
		}

		if err := r.sleep(ctx, r.calculateDelay(attempt)); err != nil {
			return nil, err
		}
	}

	return nil, lastErr
}

// GetRemote implements Invoker
func (r *RetryableInvoker) GetRemote() ClientRemoteInfo {
	return r.inner.GetRemote()
}

// GetModelInfo implements Invoker
func (r *RetryableInvoker) GetModelInfo(model string) ModelInfo {
	return r.inner.GetModelInfo(model)
}

// Close implements Invoker
func (r *RetryableInvoker) Close() error {
	return r.inner.Close()
}

// sleep waits for the delay while respecting context cancellation
func (r *RetryableInvoker) sleep(ctx context.Context, delay time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// isRetryableError determines if an error should trigger a retry
func (r *RetryableInvoker) isRetryableError(err error) bool {
	llmErr, ok := err.(*Error)
	if !ok {
		return false
	}

	if llmErr.Type == ErrorTypeRateLimit {
		return true
	}

	for _, retryableCode := range r.config.RetryableErrors {
		if llmErr.Code == retryableCode {
			return true
		}
	}

	if llmErr.StatusCode == 429 {
		return true
	}

	// Server errors (5xx) might be temporary
	if llmErr.StatusCode >= 500 && llmErr.StatusCode < 600 {
		return true
	}

	return false
}

// calculateDelay computes the delay for a given retry attempt using exponential backoff
func (r *RetryableInvoker) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.BackoffFactor, float64(attempt))

	// Apply jitter if enabled (random factor between 0.5 and 1.5)
	if r.config.Jitter {
		randomValue, err := secureRandomFloat64()
		if err != nil {
			randomValue = 1.0
		}
		delay *= 0.5 + randomValue
	}

	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}

	return time.Duration(delay)
}

// Ensure RetryableInvoker implements Invoker
var _ Invoker = (*RetryableInvoker)(nil)
