// Model family detection and capability information
package llm

import "strings"

// ModelFamily identifies the request/response dialect a Bedrock model speaks
type ModelFamily string

const (
	FamilyClaude3      ModelFamily = "claude3"
	FamilyClaudeLegacy ModelFamily = "claude_legacy"
	FamilyTitan        ModelFamily = "titan"
	FamilyCohere       ModelFamily = "cohere"
	FamilyMeta         ModelFamily = "meta"
	FamilyAI21         ModelFamily = "ai21"
	// FamilyOther covers unknown model ids, which are encoded with the
	// Titan body shape and a generic transcript
	FamilyOther ModelFamily = "other"
)

// FamilyOf returns the model family for a Bedrock model id. Dispatch is by
// id prefix, matching the naming scheme of the Bedrock model catalog.
func FamilyOf(model string) ModelFamily {
	switch {
	case strings.HasPrefix(model, "anthropic.claude-3"):
		return FamilyClaude3
	case strings.HasPrefix(model, "anthropic."):
		return FamilyClaudeLegacy
	case strings.HasPrefix(model, "cohere."):
		return FamilyCohere
	case strings.HasPrefix(model, "meta."):
		return FamilyMeta
	case strings.HasPrefix(model, "ai21."):
		return FamilyAI21
	case strings.HasPrefix(model, "amazon.titan"):
		return FamilyTitan
	default:
		return FamilyOther
	}
}

// ModelInfo contains information about a model
type ModelInfo struct {
	Name              string      `json:"name"`
	Provider          string      `json:"provider"`
	Family            ModelFamily `json:"family"`
	MaxTokens         int         `json:"max_tokens"`
	SupportsChat      bool        `json:"supports_chat"`
	SupportsStreaming bool        `json:"supports_streaming"`
}
