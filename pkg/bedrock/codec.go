// Per-model-family request and response codecs.
//
// Bedrock exposes one InvokeModel API but every model family speaks its own
// JSON dialect. The codec converts the provider-agnostic llm.InvokeRequest
// into the family body, and the family response back into llm.InvokeResponse.
package bedrock

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/xpressai/xai-bedrock/pkg/llm"
)

const anthropicVersion = "bedrock-2023-05-31"

// Sampling defaults applied when the request leaves TopK/TopP unset
const (
	defaultClaudeTopK = 250
	defaultClaudeTopP = 1.0
	defaultCohereTopP = 1.0
	defaultCohereTopK = 0
	defaultMetaTopP   = 0.9
	defaultAI21TopP   = 0.9
	defaultTitanTopP  = 1.0
)

// transcript encoders, one per prompt dialect

// claudeLegacyTranscript renders the Human/Assistant transcript used by
// Claude v2 and Claude Instant
func claudeLegacyTranscript(messages llm.Conversation) string {
	var b strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleSystem:
			b.WriteString(msg.Content)
		case llm.RoleUser:
			b.WriteString("\n\nHuman: " + msg.Content)
		case llm.RoleAssistant:
			b.WriteString("\n\nAssistant: " + msg.Content)
		}
	}
	b.WriteString("\n\nAssistant:")
	return b.String()
}

// titanTranscript renders the User/System/Bot transcript Titan expects
func titanTranscript(messages llm.Conversation) string {
	var b strings.Builder
	for _, msg := range messages {
		switch msg.Role {
		case llm.RoleUser:
			b.WriteString("User: " + msg.Content + "\n\n")
		case llm.RoleSystem:
			b.WriteString("System: " + msg.Content + "\n\n")
		case llm.RoleAssistant:
			b.WriteString("Bot: " + msg.Content + "\n\n")
		}
	}
	b.WriteString("Bot:")
	return b.String()
}

// genericTranscript renders a role-tagged transcript for families without a
// documented chat dialect
func genericTranscript(messages llm.Conversation) string {
	var b strings.Builder
	for _, msg := range messages {
		b.WriteString(string(msg.Role) + "|> " + msg.Content + "\n\n")
	}
	b.WriteString("assistant|>")
	return b.String()
}

// promptFor returns the flattened prompt for families that take a single
// prompt string. Raw completion requests pass their prompt through untouched.
func promptFor(family llm.ModelFamily, req llm.InvokeRequest) string {
	if !req.IsChat() {
		return req.Prompt
	}
	switch family {
	case llm.FamilyClaudeLegacy:
		return claudeLegacyTranscript(req.Messages)
	case llm.FamilyTitan:
		return titanTranscript(req.Messages)
	default:
		return genericTranscript(req.Messages)
	}
}

// stopsFor returns the stop sequences for the request. Chat transcripts stop
// at the next speaker tag; raw completions run until the model stops.
func stopsFor(family llm.ModelFamily, req llm.InvokeRequest) []string {
	if req.StopSequences != nil {
		return req.StopSequences
	}
	if !req.IsChat() {
		return []string{}
	}
	switch family {
	case llm.FamilyClaudeLegacy:
		return []string{"\n\nHuman:"}
	case llm.FamilyAI21:
		return []string{"\n\nuser|>"}
	case llm.FamilyTitan, llm.FamilyOther:
		return []string{"User:"}
	default:
		return []string{}
	}
}

// encodeRequest converts the request into the model family's JSON body
func encodeRequest(req llm.InvokeRequest) ([]byte, error) {
	family := llm.FamilyOf(req.Model)

	switch family {
	case llm.FamilyClaude3:
		return encodeClaude3Request(req)
	case llm.FamilyClaudeLegacy:
		return encodeClaudeLegacyRequest(req)
	case llm.FamilyCohere:
		return encodeCohereRequest(req)
	case llm.FamilyMeta:
		return encodeMetaRequest(req)
	case llm.FamilyAI21:
		return encodeAI21Request(req)
	default:
		return encodeTitanRequest(family, req)
	}
}

// encodeClaude3Request builds the Claude 3.x messages body. System messages
// are collected into the top-level system field; raw completions become a
// single user turn.
func encodeClaude3Request(req llm.InvokeRequest) ([]byte, error) {
	var messages []map[string]any
	var system strings.Builder

	conversation := req.Messages
	if !req.IsChat() {
		conversation = llm.Conversation{llm.NewMessage(llm.RoleUser, req.Prompt)}
	}

	for _, msg := range conversation {
		if msg.Role == llm.RoleSystem {
			if system.Len() > 0 {
				system.WriteString("\n")
			}
			system.WriteString(msg.Content)
			continue
		}
		messages = append(messages, map[string]any{
			"role": string(msg.Role),
			"content": []map[string]any{
				{"type": "text", "text": msg.Content},
			},
		})
	}

	body := map[string]any{
		"anthropic_version": anthropicVersion,
		"max_tokens":        req.MaxTokens,
		"temperature":       req.Temperature,
		"messages":          messages,
	}
	if system.Len() > 0 {
		body["system"] = system.String()
	}
	if req.TopK != nil {
		body["top_k"] = *req.TopK
	}
	if req.TopP != nil {
		body["top_p"] = *req.TopP
	}
	if stops := stopsFor(llm.FamilyClaude3, req); len(stops) > 0 {
		body["stop_sequences"] = stops
	}

	return json.Marshal(body)
}

func encodeClaudeLegacyRequest(req llm.InvokeRequest) ([]byte, error) {
	topK := defaultClaudeTopK
	if req.TopK != nil {
		topK = *req.TopK
	}
	topP := float32(defaultClaudeTopP)
	if req.TopP != nil {
		topP = *req.TopP
	}

	return json.Marshal(map[string]any{
		"prompt":               promptFor(llm.FamilyClaudeLegacy, req),
		"max_tokens_to_sample": req.MaxTokens,
		"temperature":          req.Temperature,
		"top_k":                topK,
		"top_p":                topP,
		"stop_sequences":       stopsFor(llm.FamilyClaudeLegacy, req),
		"anthropic_version":    anthropicVersion,
	})
}

func encodeCohereRequest(req llm.InvokeRequest) ([]byte, error) {
	topP := float32(defaultCohereTopP)
	if req.TopP != nil {
		topP = *req.TopP
	}
	topK := defaultCohereTopK
	if req.TopK != nil {
		topK = *req.TopK
	}

	return json.Marshal(map[string]any{
		"prompt":      promptFor(llm.FamilyCohere, req),
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
		"p":           topP,
		"k":           topK,
	})
}

func encodeMetaRequest(req llm.InvokeRequest) ([]byte, error) {
	topP := float32(defaultMetaTopP)
	if req.TopP != nil {
		topP = *req.TopP
	}

	return json.Marshal(map[string]any{
		"prompt":      promptFor(llm.FamilyMeta, req),
		"max_gen_len": req.MaxTokens,
		"temperature": req.Temperature,
		"top_p":       topP,
	})
}

func encodeAI21Request(req llm.InvokeRequest) ([]byte, error) {
	topP := float32(defaultAI21TopP)
	if req.TopP != nil {
		topP = *req.TopP
	}

	zeroScale := map[string]any{"scale": 0}
	return json.Marshal(map[string]any{
		"prompt":           promptFor(llm.FamilyAI21, req),
		"maxTokens":        req.MaxTokens,
		"temperature":      req.Temperature,
		"topP":             topP,
		"stopSequences":    stopsFor(llm.FamilyAI21, req),
		"countPenalty":     zeroScale,
		"presencePenalty":  zeroScale,
		"frequencyPenalty": zeroScale,
	})
}

// encodeTitanRequest handles both amazon.titan models and unknown model ids,
// which get the Titan body with a generic transcript
func encodeTitanRequest(family llm.ModelFamily, req llm.InvokeRequest) ([]byte, error) {
	topP := float32(defaultTitanTopP)
	if req.TopP != nil {
		topP = *req.TopP
	}

	return json.Marshal(map[string]any{
		"inputText": promptFor(family, req),
		"textGenerationConfig": map[string]any{
			"maxTokenCount": req.MaxTokens,
			"temperature":   req.Temperature,
			"topP":          topP,
			"stopSequences": stopsFor(family, req),
		},
	})
}

// Response body shapes, one per family

type claudeLegacyResponse struct {
	Completion string `json:"completion"`
	StopReason string `json:"stop_reason"`
}

type claude3Response struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type titanResponse struct {
	InputTextTokenCount int `json:"inputTextTokenCount"`
	Results             []struct {
		TokenCount       int    `json:"tokenCount"`
		OutputText       string `json:"outputText"`
		CompletionReason string `json:"completionReason"`
	} `json:"results"`
}

type cohereResponse struct {
	Generations []struct {
		Text         string `json:"text"`
		FinishReason string `json:"finish_reason"`
	} `json:"generations"`
}

type metaResponse struct {
	Generation           string `json:"generation"`
	StopReason           string `json:"stop_reason"`
	PromptTokenCount     int    `json:"prompt_token_count"`
	GenerationTokenCount int    `json:"generation_token_count"`
}

type ai21Response struct {
	Completions []struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
		FinishReason struct {
			Reason string `json:"reason"`
		} `json:"finishReason"`
	} `json:"completions"`
}

func newResponseID() string {
	return fmt.Sprintf("bedrock-%s", time.Now().Format(time.RFC3339Nano))
}

// decodeResponse converts a family response body into an InvokeResponse
func decodeResponse(model string, body []byte) (*llm.InvokeResponse, error) {
	resp := &llm.InvokeResponse{
		ID:    newResponseID(),
		Model: model,
	}

	switch llm.FamilyOf(model) {
	case llm.FamilyClaude3:
		var r claude3Response
		if err := json.Unmarshal(body, &r); err != nil {
			return nil, decodeError(model, err)
		}
		for _, block := range r.Content {
			if block.Type == "text" {
				resp.Completion += block.Text
			}
		}
		resp.StopReason = r.StopReason
		resp.Usage = llm.Usage{
			PromptTokens:     r.Usage.InputTokens,
			CompletionTokens: r.Usage.OutputTokens,
			TotalTokens:      r.Usage.InputTokens + r.Usage.OutputTokens,
		}

	case llm.FamilyClaudeLegacy:
		var r claudeLegacyResponse
		if err := json.Unmarshal(body, &r); err != nil {
			return nil, decodeError(model, err)
		}
		resp.Completion = r.Completion
		resp.StopReason = r.StopReason

	case llm.FamilyCohere:
		var r cohereResponse
		if err := json.Unmarshal(body, &r); err != nil {
			return nil, decodeError(model, err)
		}
		if len(r.Generations) > 0 {
			resp.Completion = r.Generations[0].Text
			resp.StopReason = r.Generations[0].FinishReason
		}

	case llm.FamilyMeta:
		var r metaResponse
		if err := json.Unmarshal(body, &r); err != nil {
			return nil, decodeError(model, err)
		}
		resp.Completion = r.Generation
		resp.StopReason = r.StopReason
		resp.Usage = llm.Usage{
			PromptTokens:     r.PromptTokenCount,
			CompletionTokens: r.GenerationTokenCount,
			TotalTokens:      r.PromptTokenCount + r.GenerationTokenCount,
		}

	case llm.FamilyAI21:
		var r ai21Response
		if err := json.Unmarshal(body, &r); err != nil {
			return nil, decodeError(model, err)
		}
		if len(r.Completions) > 0 {
			resp.Completion = r.Completions[0].Data.Text
			resp.StopReason = r.Completions[0].FinishReason.Reason
		}

	default:
		var r titanResponse
		if err := json.Unmarshal(body, &r); err != nil {
			return nil, decodeError(model, err)
		}
		if len(r.Results) > 0 {
			resp.Completion = r.Results[0].OutputText
			resp.StopReason = r.Results[0].CompletionReason
			resp.Usage = llm.Usage{
				PromptTokens:     r.InputTextTokenCount,
				CompletionTokens: r.Results[0].TokenCount,
				TotalTokens:      r.InputTextTokenCount + r.Results[0].TokenCount,
			}
		}
	}

	return resp, nil
}

func decodeError(model string, err error) *llm.Error {
	return &llm.Error{
		Code:    "invalid_response",
		Message: fmt.Sprintf("decoding %s response: %v", model, err),
		Type:    llm.ErrorTypeAPI,
	}
}

// Streaming chunk shapes

type claude3Chunk struct {
	Type  string `json:"type"`
	Delta struct {
		Type       string `json:"type"`
		Text       string `json:"text"`
		StopReason string `json:"stop_reason"`
	} `json:"delta"`
}

type titanChunk struct {
	OutputText       string `json:"outputText"`
	CompletionReason string `json:"completionReason"`
}

type cohereChunk struct {
	Text         string `json:"text"`
	IsFinished   bool   `json:"is_finished"`
	FinishReason string `json:"finish_reason"`
}

// decodeStreamChunk extracts the incremental text and optional finish reason
// from one streaming chunk
func decodeStreamChunk(model string, chunk []byte) (text, finish string, err error) {
	switch llm.FamilyOf(model) {
	case llm.FamilyClaude3:
		var c claude3Chunk
		if err := json.Unmarshal(chunk, &c); err != nil {
			return "", "", err
		}
		return c.Delta.Text, c.Delta.StopReason, nil

	case llm.FamilyClaudeLegacy:
		var c claudeLegacyResponse
		if err := json.Unmarshal(chunk, &c); err != nil {
			return "", "", err
		}
		return c.Completion, c.StopReason, nil

	case llm.FamilyCohere:
		var c cohereChunk
		if err := json.Unmarshal(chunk, &c); err != nil {
			return "", "", err
		}
		return c.Text, c.FinishReason, nil

	case llm.FamilyMeta:
		var c metaResponse
		if err := json.Unmarshal(chunk, &c); err != nil {
			return "", "", err
		}
		return c.Generation, c.StopReason, nil

	default:
		var c titanChunk
		if err := json.Unmarshal(chunk, &c); err != nil {
			return "", "", err
		}
		return c.OutputText, c.CompletionReason, nil
	}
}
