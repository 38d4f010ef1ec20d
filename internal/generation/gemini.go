package generation

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GeminiModel is the default Gemini model id.
const GeminiModel = "gemini-pro"

// GeminiProvider calls the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
}

// NewGeminiProvider creates a Gemini-backed provider. baseURL is optional and
// mostly useful for pointing the SDK at a proxy or a test server.
func NewGeminiProvider(ctx context.Context, apiKey, baseURL string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiProvider{client: client}, nil
}

// Name implements Provider.
func (p *GeminiProvider) Name() string { return "gemini" }

// Generate implements Provider.
func (p *GeminiProvider) Generate(ctx context.Context, req Request) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(req.Template.Temperature),
		TopK:            genai.Ptr(req.Template.TopK),
		TopP:            genai.Ptr(req.Template.TopP),
		MaxOutputTokens: req.Template.MaxOutputTokens,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	}
	if req.SystemInstruction != "" {
		config.SystemInstruction = genai.NewContentFromText(req.SystemInstruction, genai.RoleUser)
	}

	resp, err := p.client.Models.GenerateContent(ctx, req.Template.Model, genai.Text(req.Prompt), config)
	if err != nil {
		var apiErr genai.APIError
		var apiErrPtr *genai.APIError
		if errors.As(err, &apiErr) || errors.As(err, &apiErrPtr) {
			return "", newError(ErrProviderError, p.Name(), err)
		}
		return "", transportError(p.Name(), err)
	}
	if resp == nil {
		return "", newError(ErrEmptyResponse, p.Name(), nil)
	}
	return resp.Text(), nil
}
