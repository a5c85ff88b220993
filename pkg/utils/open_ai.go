package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	req "traveldeal/internal/models/request_models"
	resp "traveldeal/internal/models/response_models"
)

const defaultOpenAIModel = "gpt-4o-mini"

type OpenAINarrativeClient struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAINarrativeClient(cfg NarrativeClientConfig) *OpenAINarrativeClient {
	conf := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		conf.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAINarrativeClient{
		client:      openai.NewClientWithConfig(conf),
		model:       model,
		temperature: cfg.Temperature,
	}
}

func (c *OpenAINarrativeClient) GenerateItinerary(ctx context.Context, request req.NarrativeRequest) (*resp.NarrativeResponse, error) {
	prompt, err := buildNarrativePrompt(request)
	if err != nil {
		return nil, err
	}

	completion, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: narrativeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: openai: %v", ErrGenerationUnavailable, err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("%w: openai returned no choices", ErrMalformedGeneration)
	}
	return ParseNarrativeJSON(completion.Choices[0].Message.Content)
}

func (c *OpenAINarrativeClient) Close() error { return nil }
