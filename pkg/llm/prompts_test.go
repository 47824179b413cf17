package llm

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptTemplate(t *testing.T) {
	t.Run("render_simple", func(t *testing.T) {
		pt := NewPromptTemplate("Hello {{.Name}}, welcome to {{.Place}}!")
		out, err := pt.Render(map[string]any{"Name": "Ada", "Place": "Bedrock"})
		require.NoError(t, err)
		assert.Equal(t, "Hello Ada, welcome to Bedrock!", out)
	})

	t.Run("render_rendered_helper", func(t *testing.T) {
		out, err := NewPromptTemplateRendered("{{.A}}+{{.B}}", map[string]any{"A": 1, "B": 2})
		require.NoError(t, err)
		assert.Equal(t, "1+2", out)
	})

	t.Run("render_invalid_template", func(t *testing.T) {
		pt := NewPromptTemplate("{{.Unclosed")
		_, err := pt.Render(map[string]any{})
		assert.Error(t, err)
	})

	t.Run("render_with_json_schema", func(t *testing.T) {
		type answer struct {
			Text  string `json:"text"`
			Score int    `json:"score"`
		}

		pt := NewPromptTemplate("Answer as JSON matching:\n{{.JSONSchema}}")
		out, err := pt.RenderWithJSONSchemaFor(map[string]any{}, answer{})
		require.NoError(t, err)
		assert.Contains(t, out, `"text"`)
		assert.Contains(t, out, `"score"`)
	})
}

func TestPromptsConfig(t *testing.T) {
	t.Run("join_and_presence", func(t *testing.T) {
		cfg := PromptsConfig{
			System: []string{"You are terse.", "Answer in English."},
			User:   []string{"Summarize the input."},
		}

		assert.True(t, cfg.HasSystemPrompts())
		assert.True(t, cfg.HasUserPrompts())
		assert.Equal(t, "You are terse.\nAnswer in English.", cfg.GetSystemPrompts())
		assert.Equal(t, "Summarize the input.", cfg.GetUserPrompts())
	})

	t.Run("empty_config", func(t *testing.T) {
		cfg := PromptsConfig{}
		assert.False(t, cfg.HasSystemPrompts())
		assert.Equal(t, "", cfg.GetSystemPrompts())
	})

	t.Run("load_from_yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "prompts.yaml")
		content := "system:\n  - You are a helpful assistant.\nuser:\n  - Hello\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		cfg, err := LoadPromptsConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "You are a helpful assistant.", cfg.GetSystemPrompts())
		assert.Equal(t, "Hello", cfg.GetUserPrompts())
	})

	t.Run("load_missing_file", func(t *testing.T) {
		_, err := LoadPromptsConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("load_invalid_yaml", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("system: [unclosed"), 0600))

		_, err := LoadPromptsConfig(path)
		assert.Error(t, err)
	})
}
