package llm

import (
	"errors"
	"fmt"
	"time"

	"github.com/Harshitk-cp/introspect/internal/domain"
)

// Provider constants
const (
	ProviderOllama = "ollama"
	ProviderMock   = "mock"
)

// ErrModelUnavailable marks transport, timeout, or backend failures on the
// generative model. The wrapped message tells the operator which backend was
// expected and how to bring it up.
var ErrModelUnavailable = errors.New("model unavailable")

// NewClient creates an LLM client based on the provider name.
func NewClient(provider, baseURL, model string, timeout time.Duration) (domain.LLMClient, error) {
	switch provider {
	case ProviderOllama:
		return NewOllamaClient(baseURL, model, timeout), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (valid options: ollama, mock)", provider)
	}
}
