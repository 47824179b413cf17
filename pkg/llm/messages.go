// Message and conversation types
package llm

import "fmt"

// Message represents a single chat message
type Message struct {
	Role    MessageRole `json:"role"`
	Content string      `json:"content"`
}

// MessageRole defines the role of a message sender
type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// NewMessage creates a new Message with the given role and text
func NewMessage(role MessageRole, text string) Message {
	return Message{Role: role, Content: text}
}

// Conversation is an ordered chat transcript. Components thread conversations
// between ports, so all mutating helpers return a new slice and leave the
// receiver untouched.
type Conversation []Message

// WithSystem returns a new conversation with a system message prepended
func (c Conversation) WithSystem(text string) Conversation {
	out := make(Conversation, 0, len(c)+1)
	out = append(out, NewMessage(RoleSystem, text))
	out = append(out, c...)
	return out
}

// WithUser returns a new conversation with a user message appended
func (c Conversation) WithUser(text string) Conversation {
	return c.Append(NewMessage(RoleUser, text))
}

// WithAssistant returns a new conversation with an assistant message appended
func (c Conversation) WithAssistant(text string) Conversation {
	return c.Append(NewMessage(RoleAssistant, text))
}

// Append returns a new conversation with the given messages appended
func (c Conversation) Append(messages ...Message) Conversation {
	out := make(Conversation, 0, len(c)+len(messages))
	out = append(out, c...)
	out = append(out, messages...)
	return out
}

// Clone returns an independent copy of the conversation
func (c Conversation) Clone() Conversation {
	if c == nil {
		return nil
	}
	out := make(Conversation, len(c))
	copy(out, c)
	return out
}

// LastAssistant returns the content of the last assistant message, or ""
func (c Conversation) LastAssistant() string {
	for i := len(c) - 1; i >= 0; i-- {
		if c[i].Role == RoleAssistant {
			return c[i].Content
		}
	}
	return ""
}

// Validate checks that every message has a known role
func (c Conversation) Validate() error {
	for i, msg := range c {
		switch msg.Role {
		case RoleSystem, RoleUser, RoleAssistant:
		default:
			return NewValidationError("invalid_role",
				fmt.Sprintf("message %d has unsupported role: %s", i, msg.Role))
		}
	}
	return nil
}
