// End-to-end tests exercising components the way a workflow engine would:
// instantiated through the factory, wired by ports, sharing one scope.
package test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpressai/xai-bedrock/pkg/components"
	"github.com/xpressai/xai-bedrock/pkg/factory"
	"github.com/xpressai/xai-bedrock/pkg/llm"
	"github.com/xpressai/xai-bedrock/pkg/mock"
)

func TestChatPipeline(t *testing.T) {
	client := mock.NewClient().
		WithSimpleResponse("Paris.").
		WithSimpleResponse("About 2.1 million people.")

	scope := components.NewScope()
	scope.SetInvoker(client)

	ctx := context.Background()

	first := &components.InvokeModelChat{}
	first.ModelID.Set("anthropic.claude-3-sonnet-20240229-v1:0")
	first.SystemPrompt.Set("Answer briefly.")
	first.UserPrompt.Set("What is the capital of France?")
	first.MaxTokens.Set(256)
	first.Temperature.Set(0.2)
	require.NoError(t, first.Execute(ctx, scope))
	assert.Equal(t, "Paris.", first.Completion.Value())

	second := &components.InvokeModelChat{}
	second.ModelID.Set("anthropic.claude-3-sonnet-20240229-v1:0")
	second.UserPrompt.Set("How many people live there?")
	second.Conversation.Set(first.OutConversation.Value())
	second.MaxTokens.Set(256)
	second.Temperature.Set(0.2)
	require.NoError(t, second.Execute(ctx, scope))

	conversation := second.OutConversation.Value()
	require.Len(t, conversation, 5)
	assert.Equal(t, llm.RoleSystem, conversation[0].Role)
	assert.Equal(t, "What is the capital of France?", conversation[1].Content)
	assert.Equal(t, "Paris.", conversation[2].Content)
	assert.Equal(t, "How many people live there?", conversation[3].Content)
	assert.Equal(t, "About 2.1 million people.", conversation[4].Content)

	// The second request carried the full history
	sent := client.LastRequest()
	require.NotNil(t, sent)
	assert.Len(t, sent.Messages, 4)
}

func TestFactoryDrivenPipeline(t *testing.T) {
	f := factory.New()
	scope := components.NewScope()
	scope.SetInvoker(mock.NewClient().WithSimpleResponse("done"))

	ctx := context.Background()

	renderAny, err := f.CreateComponent("RenderPromptTemplate")
	require.NoError(t, err)
	render := renderAny.(*components.RenderPromptTemplate)
	render.Template.Set("Translate to {{.Language}}: {{.Text}}")
	render.Inputs.Set(map[string]any{"Language": "French", "Text": "hello"})
	require.NoError(t, render.Execute(ctx, scope))

	invokeAny, err := f.CreateComponent("BedrockInvokeModel")
	require.NoError(t, err)
	invoke := invokeAny.(*components.InvokeModel)
	invoke.ModelID.Set("amazon.titan-text-express-v1")
	invoke.Prompt.Set(render.Rendered.Value())
	invoke.MaxTokens.Set(64)
	invoke.Temperature.Set(0.5)
	require.NoError(t, invoke.Execute(ctx, scope))

	assert.Equal(t, "done", invoke.Completion.Value())
}

func TestPipelineWithoutAuthorization(t *testing.T) {
	c := &components.InvokeModel{}
	c.ModelID.Set("amazon.titan-text-express-v1")
	c.Prompt.Set("hi")
	c.MaxTokens.Set(8)
	c.Temperature.Set(0)

	err := c.Execute(context.Background(), components.NewScope())
	require.Error(t, err)

	var llmErr *llm.Error
	require.ErrorAs(t, err, &llmErr)
	assert.Equal(t, "not_authorized", llmErr.Code)
}

func TestStreamingPipelineWithRetry(t *testing.T) {
	inner := mock.NewClient().
		WithError(&llm.Error{Code: "rate_limit_error", Type: llm.ErrorTypeRateLimit, StatusCode: 429}).
		WithStreamResponse("chunk one ", "chunk two")

	scope := components.NewScope()
	scope.SetInvoker(llm.RetryInvoker(inner, llm.RetryConfig{
		MaxRetries:    2,
		BaseDelay:     1,
		MaxDelay:      10,
		BackoffFactor: 2.0,
	}))

	c := &components.InvokeModelStream{}
	c.ModelID.Set("anthropic.claude-3-haiku-20240307-v1:0")
	c.Prompt.Set("go")
	c.MaxTokens.Set(32)
	c.Temperature.Set(1.0)

	require.NoError(t, c.Execute(context.Background(), scope))
	assert.Equal(t, "chunk one chunk two", c.Completion.Value())
	assert.Equal(t, 2, inner.CallCount())
}
