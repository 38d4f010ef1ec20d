package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// OpenAIModel is the default chat model id.
	OpenAIModel = "gpt-3.5-turbo"
	// OpenAIBaseURL has no trailing slash.
	OpenAIBaseURL   = "https://api.openai.com"
	completionsPath = "/v1/chat/completions"
)

// OpenAIProvider calls the Chat Completions API.
type OpenAIProvider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewOpenAIProvider creates an OpenAI-backed provider. A nil client falls back
// to http.DefaultClient.
func NewOpenAIProvider(baseURL, apiKey string, client *http.Client) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai API key is required")
	}
	if baseURL == "" {
		baseURL = OpenAIBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &OpenAIProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: client,
	}, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
	TopP        float32       `json:"top_p,omitempty"`
	MaxTokens   int32         `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string { return "openai" }

// Generate implements Provider. The API has no top-K knob, so Template.TopK is ignored.
func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (string, error) {
	payload := chatRequest{
		Model:       req.Template.Model,
		Temperature: req.Template.Temperature,
		TopP:        req.Template.TopP,
		MaxTokens:   req.Template.MaxOutputTokens,
	}
	if req.SystemInstruction != "" {
		payload.Messages = append(payload.Messages, chatMessage{Role: "system", Content: req.SystemInstruction})
	}
	payload.Messages = append(payload.Messages, chatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(payload)
	if err != nil {
		return "", newError(ErrProviderError, p.Name(), fmt.Errorf("marshal request: %w", err))
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+completionsPath, bytes.NewReader(body))
	if err != nil {
		return "", newError(ErrProviderError, p.Name(), fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", transportError(p.Name(), err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(p.Name(), fmt.Errorf("read response: %w", err))
	}

	switch {
	case resp.StatusCode == http.StatusBadGateway,
		resp.StatusCode == http.StatusServiceUnavailable,
		resp.StatusCode == http.StatusGatewayTimeout:
		return "", newError(ErrProviderUnavailable, p.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, raw))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return "", newError(ErrProviderError, p.Name(), fmt.Errorf("status %d: %s", resp.StatusCode, raw))
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", newError(ErrProviderError, p.Name(), fmt.Errorf("decode response: %w", err))
	}
	if parsed.Error != nil {
		return "", newError(ErrProviderError, p.Name(), fmt.Errorf("%s: %s", parsed.Error.Type, parsed.Error.Message))
	}
	if len(parsed.Choices) == 0 {
		return "", newError(ErrEmptyResponse, p.Name(), nil)
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}
