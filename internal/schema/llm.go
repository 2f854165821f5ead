package schema

import "context"

// ToolCallRequest is one tool invocation requested by the model in a single
// inference response, before it has been folded into conversation history.
type ToolCallRequest struct {
	ID        string
	Name      string
	Arguments map[string]any
}

// LLMResponse is the parsed result of one model inference call.
// Content is nil when the model responded with tool calls only.
type LLMResponse struct {
	Content      *string
	ToolCalls    []ToolCallRequest
	FinishReason string
	Usage        map[string]int
}

// Text returns the response content, or "" when the model produced none.
func (r LLMResponse) Text() string {
	if r.Content == nil {
		return ""
	}
	return *r.Content
}

// ChatOptions carries per-call inference parameters.
type ChatOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
}

func NewChatOptions(model string, maxTokens int, temperature float64) ChatOptions {
	return ChatOptions{Model: model, MaxTokens: maxTokens, Temperature: temperature}
}

// LLMProvider is the reasoning boundary: a blocking request/response call to
// a chat-completion model with function-calling support. The orchestration
// loop depends only on this interface so tests can script responses.
type LLMProvider interface {
	Chat(ctx context.Context, messages Messages, tools []map[string]any, opts ChatOptions) (LLMResponse, error)
	DefaultModel() string
}
