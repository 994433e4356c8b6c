package utils

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// TextGenerationClientInterface is the narrow surface the narration layer
// needs from a generative backend.
type TextGenerationClientInterface interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type GeminiTextClient struct {
	client *genai.Client
	model  string
}

func NewGeminiTextClient(apiKey, model string) (*GeminiTextClient, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiTextClient{client: client, model: model}, nil
}

func (c *GeminiTextClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.3)
	model.SetTopP(0.5)
	model.SetTopK(20)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}
