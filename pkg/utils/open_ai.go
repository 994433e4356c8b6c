package utils

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type OpenAITextClient struct {
	client *openai.Client
	model  string
}

func NewOpenAITextClient(apiKey, model string) *OpenAITextClient {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAITextClient{client: openai.NewClient(apiKey), model: model}
}

func (c *OpenAITextClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.3,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated by OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
