// Package ports declares the interfaces the application core depends on.
package ports

import "context"

// UsageData reports token consumption from an LLM provider.
type UsageData struct {
	PromptTokens     int    `json:"prompt_tokens"`
	CompletionTokens int    `json:"completion_tokens"`
	TotalTokens      int    `json:"total_tokens"`
	Model            string `json:"model"`
}

// ChatRequest is a single chat-completion call.
type ChatRequest struct {
	Model     string
	System    string
	Prompt    string
	MaxTokens int
}

// ChatResponse carries the model's free-text answer.
type ChatResponse struct {
	Content string
	Usage   *UsageData
}

// LLMClient is the outbound boundary to a hosted chat-completion endpoint.
// Implementations must honor ctx cancellation so callers can bound the call
// with a timeout.
type LLMClient interface {
	ChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}
