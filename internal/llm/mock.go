package llm

import "context"

// MockClient is a configurable LLM client for testing.
// Set the response fields to control what Generate returns.
type MockClient struct {
	GenerateResponse string
	GenerateError    error

	// GenerateResponses, when non-empty, is consumed one entry per call
	// before falling back to GenerateResponse.
	GenerateResponses []string

	// Call tracking for assertions
	GenerateCalls []GenerateCall
}

type GenerateCall struct {
	Prompt      string
	Temperature float64
}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (c *MockClient) Generate(ctx context.Context, prompt string, temperature float64) (string, error) {
	c.GenerateCalls = append(c.GenerateCalls, GenerateCall{Prompt: prompt, Temperature: temperature})
	if c.GenerateError != nil {
		return "", c.GenerateError
	}
	if len(c.GenerateResponses) > 0 {
		resp := c.GenerateResponses[0]
		c.GenerateResponses = c.GenerateResponses[1:]
		return resp, nil
	}
	return c.GenerateResponse, nil
}

// Reset clears all recorded calls and configured responses.
func (c *MockClient) Reset() {
	c.GenerateResponse = ""
	c.GenerateError = nil
	c.GenerateResponses = nil
	c.GenerateCalls = nil
}
