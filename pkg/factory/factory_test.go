package factory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpressai/xai-bedrock/pkg/components"
	"github.com/xpressai/xai-bedrock/pkg/llm"
)

func TestRegistry(t *testing.T) {
	t.Run("builtin_components_registered", func(t *testing.T) {
		names := ListComponents()
		assert.Contains(t, names, "BedrockAuthorize")
		assert.Contains(t, names, "BedrockInvokeModel")
		assert.Contains(t, names, "BedrockInvokeModelChat")
		assert.Contains(t, names, "BedrockInvokeModelStream")
		assert.Contains(t, names, "BedrockListModels")
		assert.Contains(t, names, "RenderPromptTemplate")
	})

	t.Run("constructors_return_fresh_instances", func(t *testing.T) {
		constructor, ok := GetComponent("BedrockInvokeModel")
		require.True(t, ok)

		a := constructor()
		b := constructor()
		assert.NotSame(t, a, b)
		assert.Equal(t, "BedrockInvokeModel", a.Name())
	})

	t.Run("unknown_name", func(t *testing.T) {
		_, ok := GetComponent("NoSuchComponent")
		assert.False(t, ok)
	})
}

func TestFactoryCreateComponent(t *testing.T) {
	f := New()

	t.Run("creates_by_name", func(t *testing.T) {
		component, err := f.CreateComponent("BedrockInvokeModelChat")
		require.NoError(t, err)
		assert.IsType(t, &components.InvokeModelChat{}, component)
		assert.Equal(t, "BedrockInvokeModelChat", component.Name())
	})

	t.Run("unknown_component", func(t *testing.T) {
		_, err := f.CreateComponent("NoSuchComponent")
		require.Error(t, err)

		var llmErr *llm.Error
		require.ErrorAs(t, err, &llmErr)
		assert.Equal(t, "unknown_component", llmErr.Code)
	})
}
