package components

import (
	"context"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

// InvokeModelChat runs one chat turn against a Bedrock model. The incoming
// conversation (if any) is extended with the user prompt, and OutConversation
// carries the transcript including the assistant's reply, so it can feed the
// next turn.
type InvokeModelChat struct {
	ModelID      In[string]
	SystemPrompt In[string]
	UserPrompt   In[string]
	Conversation In[llm.Conversation]
	MaxTokens    In[int]
	Temperature  In[float32]
	TopK         In[int]
	TopP         In[float32]

	Completion      Out[string]
	OutConversation Out[llm.Conversation]
}

func (c *InvokeModelChat) Name() string { return "BedrockInvokeModelChat" }

func (c *InvokeModelChat) Execute(ctx context.Context, scope *Scope) error {
	for _, check := range []error{
		requireSet(&c.ModelID, "model_id"),
		requireSet(&c.UserPrompt, "user_prompt"),
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

	conversation := c.Conversation.Value().Clone()
	if system, ok := c.SystemPrompt.Get(); ok && system != "" {
		conversation = conversation.WithSystem(system)
	}
	conversation = conversation.WithUser(c.UserPrompt.Value())

	req := llm.InvokeRequest{
		Model:       c.ModelID.Value(),
		Messages:    conversation,
		MaxTokens:   c.MaxTokens.Value(),
		Temperature: c.Temperature.Value(),
	}
	if topK, ok := c.TopK.Get(); ok {
		req.TopK = &topK
	}
	if topP, ok := c.TopP.Get(); ok {
		req.TopP = &topP
	}

	resp, err := invoker.Invoke(ctx, req)
	if err != nil {
		return err
	}

	c.Completion.Set(resp.Completion)
	c.OutConversation.Set(conversation.WithAssistant(resp.Completion))
	return nil
}

// InvokeModel runs a raw completion request: the prompt is sent to the model
// unmodified, with no transcript formatting and no implicit stop sequences.
type InvokeModel struct {
	ModelID     In[string]
	Prompt      In[string]
	MaxTokens   In[int]
	Temperature In[float32]
	TopK        In[int]
	TopP        In[float32]

	Completion Out[string]
}

func (c *InvokeModel) Name() string { return "BedrockInvokeModel" }

func (c *InvokeModel) Execute(ctx context.Context, scope *Scope) error {
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

	resp, err := invoker.Invoke(ctx, req)
	if err != nil {
		return err
	}

	c.Completion.Set(resp.Completion)
	return nil
}
