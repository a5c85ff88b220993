package utils

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
)

// GeminiNarrativeClient implements NarrativeClientInterface using Google's Gemini models
type GeminiNarrativeClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

func NewGeminiNarrativeClient(cfg NarrativeClientConfig) (NarrativeClientInterface, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}
	client, err := genai.NewClient(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiNarrativeClient{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

func (c *GeminiNarrativeClient) GenerateItinerary(ctx context.Context, request req.NarrativeRequest) (*resp.NarrativeResponse, error) {
	prompt, err := buildNarrativePrompt(request)
	if err != nil {
		return nil, err
	}

	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(c.temperature)
	m.SetTopP(0.8)
	m.SystemInstruction = genai.NewUserContent(genai.Text(narrativeSystemPrompt))

	out, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("%w: gemini: %v", ErrGenerationUnavailable, err)
	}
	if len(out.Candidates) == 0 || out.Candidates[0].Content == nil || len(out.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("%w: gemini returned no content", ErrMalformedGeneration)
	}

	content := fmt.Sprintf("%v", out.Candidates[0].Content.Parts[0])
	return ParseNarrativeJSON(content)
}

// Close closes the Gemini client
func (c *GeminiNarrativeClient) Close() error {
	return c.client.Close()
}
