package llm

import "context"

// Message is one chat turn. Role is "user" or "assistant"; the system prompt
// travels separately in Request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string
	System      string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// LLM is a chat-completion backend.
type LLM interface {
	Chat(ctx context.Context, req Request) (string, error)
}
