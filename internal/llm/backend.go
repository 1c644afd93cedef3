package llm

import (
	"fmt"
	"strings"
)

// DefaultModel returns the model used when none is configured for provider.
func DefaultModel(provider string) string {
	switch strings.ToLower(provider) {
	case "anthropic", "claude":
		return "claude-3-5-sonnet-20240620"
	case "ollama":
		return "llama3.2"
	default:
		return "gpt-4o"
	}
}

// NewClient returns a chat backend for provider: "openai", "anthropic"
// ("claude") or "ollama", which speaks the OpenAI API on localhost.
func NewClient(provider, baseURL string) (LLM, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", "openai":
		return NewOpenAIClient(baseURL), nil
	case "anthropic", "claude":
		return NewAnthropicClient(baseURL), nil
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434/v1"
		}
		return NewOpenAIClient(baseURL), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q (want openai, anthropic or ollama)", provider)
	}
}
