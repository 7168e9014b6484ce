package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultOllamaURL = "http://localhost:11434/api/generate"
	defaultModel     = "mistral"
	defaultTimeout   = 180 * time.Second

	// Context window requested from the backend, in tokens.
	numCtx = 4096
)

// OllamaClient talks to a local Ollama server over its generate endpoint.
// Streaming is disabled; each call is a single synchronous request.
type OllamaClient struct {
	url        string
	model      string
	httpClient *http.Client
}

func NewOllamaClient(url, model string, timeout time.Duration) *OllamaClient {
	if url == "" {
		url = defaultOllamaURL
	}
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OllamaClient{
		url:        url,
		model:      model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumCtx      int     `json:"num_ctx"`
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateResponse struct {
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

func (c *OllamaClient) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: temperature,
			NumCtx:      numCtx,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal generate request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", c.unavailable(err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", c.unavailable(fmt.Sprintf("read response: %v", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", c.unavailable(fmt.Sprintf("status %d: %s", resp.StatusCode, string(respBody)))
	}

	var result generateResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", c.unavailable(fmt.Sprintf("unmarshal response: %v", err))
	}
	if result.Error != "" {
		return "", c.unavailable(result.Error)
	}

	return result.Response, nil
}

func (c *OllamaClient) unavailable(cause string) error {
	return fmt.Errorf("%w: %s\nmake sure Ollama is running:  ollama serve\npull the model if needed:     ollama pull %s",
		ErrModelUnavailable, cause, c.model)
}
