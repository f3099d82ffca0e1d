package llm

import (
	"fmt"
	"strings"
)

const (
	ProviderNone    = "none"
	ProviderCopilot = "copilot"
	ProviderOllama  = "ollama"
)

// NewClient creates an LLM client based on provider configuration.
// Provider "none" (or empty) returns a nil client: insights are disabled.
func NewClient(provider, model, baseURL string) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderCopilot:
		return NewCopilotClient(model)
	case ProviderOllama:
		return NewOllamaClient(model, baseURL)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
