package components

import (
	"context"
	"strings"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// InvokeModelStream runs a raw completion request over the streaming API and
// collects the chunks. Deltas carries each incremental piece in arrival
// order; Completion carries the concatenated text.
type InvokeModelStream struct {
	ModelID     In[string]
	Prompt      In[string]
	MaxTokens   In[int]
	Temperature In[float32]
	TopK        In[int]
	TopP        In[float32]

	Deltas     Out[[]string]
	Completion Out[string]
}

func (c *InvokeModelStream) Name() string { return "BedrockInvokeModelStream" }

func (c *InvokeModelStream) Execute(ctx context.Context, scope *Scope) error {
	for _, check := range []error{
		requireSet(&c.ModelID, "model_id"),
		requireSet(&c.Prompt, "prompt"),
		requireSet(&c.MaxTokens, "max_tokens"),
		requireSet(&c.Temperature, "temperature"),
	} {
		if check != nil {
			return check
		}
	}

	invoker, err := scope.Invoker()
	if err != nil {
		return err
	}

	req := llm.InvokeRequest{
		Model:       c.ModelID.Value(),
		Prompt:      c.Prompt.Value(),
		MaxTokens:   c.MaxTokens.Value(),
		Temperature: c.Temperature.Value(),
	}
	if topK, ok := c.TopK.Get(); ok {
		req.TopK = &topK
	}
	if topP, ok := c.TopP.Get(); ok {
		req.TopP = &topP
	}

	events, err := invoker.StreamInvoke(ctx, req)
	if err != nil {
		return err
	}

	var deltas []string
	var full strings.Builder
	for event := range events {
		switch {
		case event.IsDelta():
			deltas = append(deltas, event.Delta)
			full.WriteString(event.Delta)
		case event.IsError():
			return event.Error
		}
	}

	c.Deltas.Set(deltas)
	c.Completion.Set(full.String())
	return nil
}
