package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedInvoker returns queued errors first, then a fixed response.
// Shared by the retry and middleware tests.
type scriptedInvoker struct {
	errs     []error
	response *InvokeResponse
	calls    int
}

func (s *scriptedInvoker) Invoke(ctx context.Context, req InvokeRequest) (*InvokeResponse, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	if s.response != nil {
		return s.response, nil
	}
	return &InvokeResponse{ID: "scripted", Model: req.Model, Completion: "ok"}, nil
}

func (s *scriptedInvoker) StreamInvoke(ctx context.Context, req InvokeRequest) (<-chan StreamEvent, error) {
	s.calls++
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	ch := make(chan StreamEvent, 2)
	ch <- NewDeltaEvent("ok")
	ch <- NewDoneEvent("stop")
	close(ch)
	return ch, nil
}

func (s *scriptedInvoker) GetRemote() ClientRemoteInfo { return ClientRemoteInfo{Name: "scripted"} }

func (s *scriptedInvoker) GetModelInfo(model string) ModelInfo {
	return ModelInfo{Name: model, Provider: "scripted", Family: FamilyOf(model)}
}

func (s *scriptedInvoker) Close() error { return nil }

func fastRetryConfig(maxRetries int) RetryConfig {
	return RetryConfig{
		MaxRetries:    maxRetries,
		BaseDelay:     time.Millisecond,
		MaxDelay:      10 * time.Millisecond,
		BackoffFactor: 2.0,
		Jitter:        false,
	}
}

func TestRetryInvoker(t *testing.T) {
	req := InvokeRequest{
		Model:       "anthropic.claude-v2",
		Prompt:      "hello",
		MaxTokens:   10,
		Temperature: 0.5,
	}

	t.Run("succeeds_first_attempt", func(t *testing.T) {
		inner := &scriptedInvoker{}
		client := RetryInvoker(inner, fastRetryConfig(3))

		resp, err := client.Invoke(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Completion)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("retries_rate_limit_then_succeeds", func(t *testing.T) {
		inner := &scriptedInvoker{
			errs: []error{
				&Error{Code: "rate_limit_error", Type: ErrorTypeRateLimit, StatusCode: 429},
				&Error{Code: "rate_limit_error", Type: ErrorTypeRateLimit, StatusCode: 429},
			},
		}
		client := RetryInvoker(inner, fastRetryConfig(3))

		resp, err := client.Invoke(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "ok", resp.Completion)
		assert.Equal(t, 3, inner.calls)
	})

	t.Run("retries_server_errors", func(t *testing.T) {
		inner := &scriptedInvoker{
			errs: []error{&Error{Code: "api_error", Type: ErrorTypeAPI, StatusCode: 503}},
		}
		client := RetryInvoker(inner, fastRetryConfig(2))

		_, err := client.Invoke(context.Background(), req)
		assert.NoError(t, err)
		assert.Equal(t, 2, inner.calls)
	})

	t.Run("does_not_retry_validation_errors", func(t *testing.T) {
		inner := &scriptedInvoker{
			errs: []error{NewValidationError("missing_model", "model is required")},
		}
		client := RetryInvoker(inner, fastRetryConfig(3))

		_, err := client.Invoke(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("does_not_retry_plain_errors", func(t *testing.T) {
		inner := &scriptedInvoker{errs: []error{errors.New("boom")}}
		client := RetryInvoker(inner, fastRetryConfig(3))

		_, err := client.Invoke(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, 1, inner.calls)
	})

	t.Run("exhausts_retries", func(t *testing.T) {
		rateLimited := &Error{Code: "x", Type: ErrorTypeRateLimit, StatusCode: 429}
		inner := &scriptedInvoker{errs: []error{rateLimited, rateLimited, rateLimited}}
		client := RetryInvoker(inner, fastRetryConfig(2))

		_, err := client.Invoke(context.Background(), req)
		require.Error(t, err)
		var llmErr *Error
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, 429, llmErr.StatusCode)
		assert.Equal(t, 3, inner.calls)
	})

	t.Run("respects_context_cancellation", func(t *testing.T) {
		rateLimited := &Error{Type: ErrorTypeRateLimit, StatusCode: 429}
		inner := &scriptedInvoker{errs: []error{rateLimited, rateLimited, rateLimited}}
		client := RetryInvoker(inner, RetryConfig{
			MaxRetries:    3,
			BaseDelay:     time.Hour,
			MaxDelay:      time.Hour,
			BackoffFactor: 2.0,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := client.Invoke(ctx, req)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("stream_setup_retries", func(t *testing.T) {
		inner := &scriptedInvoker{
			errs: []error{&Error{Type: ErrorTypeRateLimit, StatusCode: 429}},
		}
		client := RetryInvoker(inner, fastRetryConfig(2))

		ch, err := client.StreamInvoke(context.Background(), req)
		require.NoError(t, err)

		var events []StreamEvent
		for ev := range ch {
			events = append(events, ev)
		}
		require.Len(t, events, 2)
		assert.True(t, events[0].IsDelta())
		assert.True(t, events[1].IsDone())
		assert.Equal(t, 2, inner.calls)
	})
}

func TestDefaultRetryConfig(t *testing.T) {
	cfg := DefaultRetryConfig()
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.BaseDelay)
	assert.Equal(t, 60*time.Second, cfg.MaxDelay)
	assert.True(t, cfg.Jitter)
}

func TestRetryInvokerDelegation(t *testing.T) {
	inner := &scriptedInvoker{}
	client := RetryInvoker(inner)

	assert.Equal(t, "scripted", client.GetRemote().Name)
	assert.Equal(t, FamilyTitan, client.GetModelInfo("amazon.titan-text-express-v1").Family)
	assert.NoError(t, client.Close())
}
