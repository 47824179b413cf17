package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationHelpers(t *testing.T) {
	t.Run("with_system_prepends", func(t *testing.T) {
		conv := Conversation{NewMessage(RoleUser, "hello")}
		out := conv.WithSystem("be brief")

		require.Len(t, out, 2)
		assert.Equal(t, RoleSystem, out[0].Role)
		assert.Equal(t, "be brief", out[0].Content)
		assert.Equal(t, RoleUser, out[1].Role)

		// Original must be untouched
		require.Len(t, conv, 1)
		assert.Equal(t, RoleUser, conv[0].Role)
	})

	t.Run("with_user_appends", func(t *testing.T) {
		conv := Conversation{}.WithSystem("sys").WithUser("question")

		require.Len(t, conv, 2)
		assert.Equal(t, RoleUser, conv[1].Role)
		assert.Equal(t, "question", conv[1].Content)
	})

	t.Run("append_does_not_mutate_receiver", func(t *testing.T) {
		base := Conversation{NewMessage(RoleUser, "one")}
		a := base.Append(NewMessage(RoleAssistant, "two"))
		b := base.Append(NewMessage(RoleAssistant, "three"))

		require.Len(t, base, 1)
		assert.Equal(t, "two", a[1].Content)
		assert.Equal(t, "three", b[1].Content)
	})

	t.Run("clone_is_independent", func(t *testing.T) {
		conv := Conversation{NewMessage(RoleUser, "hello")}
		copied := conv.Clone()
		copied[0].Content = "changed"

		assert.Equal(t, "hello", conv[0].Content)
	})

	t.Run("clone_of_nil_is_nil", func(t *testing.T) {
		var conv Conversation
		assert.Nil(t, conv.Clone())
	})

	t.Run("last_assistant", func(t *testing.T) {
		conv := Conversation{
			NewMessage(RoleUser, "q1"),
			NewMessage(RoleAssistant, "a1"),
			NewMessage(RoleUser, "q2"),
			NewMessage(RoleAssistant, "a2"),
		}
		assert.Equal(t, "a2", conv.LastAssistant())
		assert.Equal(t, "", Conversation{}.LastAssistant())
	})
}

func TestConversationValidate(t *testing.T) {
	tests := []struct {
		name    string
		conv    Conversation
		wantErr bool
	}{
		{
			name: "valid roles",
			conv: Conversation{
				NewMessage(RoleSystem, "s"),
				NewMessage(RoleUser, "u"),
				NewMessage(RoleAssistant, "a"),
			},
			wantErr: false,
		},
		{
			name:    "empty conversation",
			conv:    Conversation{},
			wantErr: false,
		},
		{
			name:    "unknown role",
			conv:    Conversation{NewMessage("tool", "x")},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.conv.Validate()
			if tt.wantErr {
				require.Error(t, err)
				var llmErr *Error
				require.ErrorAs(t, err, &llmErr)
				assert.Equal(t, ErrorTypeValidation, llmErr.Type)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestInvokeRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      InvokeRequest
		wantCode string
	}{
		{
			name: "valid chat request",
			req: InvokeRequest{
				Model:       "anthropic.claude-3-haiku-20240307-v1:0",
				Messages:    Conversation{NewMessage(RoleUser, "hi")},
				MaxTokens:   256,
				Temperature: 0.7,
			},
		},
		{
			name: "valid raw request",
			req: InvokeRequest{
				Model:       "amazon.titan-text-express-v1",
				Prompt:      "Complete this",
				MaxTokens:   128,
				Temperature: 0,
			},
		},
		{
			name: "missing model",
			req: InvokeRequest{
				Prompt:      "x",
				MaxTokens:   10,
				Temperature: 0.5,
			},
			wantCode: "missing_model",
		},
		{
			name: "missing max tokens",
			req: InvokeRequest{
				Model:       "ai21.j2-ultra-v1",
				Prompt:      "x",
				Temperature: 0.5,
			},
			wantCode: "missing_max_tokens",
		},
		{
			name: "negative temperature",
			req: InvokeRequest{
				Model:       "ai21.j2-ultra-v1",
				Prompt:      "x",
				MaxTokens:   10,
				Temperature: -1,
			},
			wantCode: "invalid_temperature",
		},
		{
			name: "neither prompt nor messages",
			req: InvokeRequest{
				Model:       "ai21.j2-ultra-v1",
				MaxTokens:   10,
				Temperature: 0.5,
			},
			wantCode: "missing_prompt",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}
			var llmErr *Error
			require.ErrorAs(t, err, &llmErr)
			assert.Equal(t, tt.wantCode, llmErr.Code)
		})
	}
}
