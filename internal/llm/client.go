package llm

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"yof-server/internal/config"
)

// Client holds the two model handles the server needs: a chat model for
// the coach conversation (tool calling, streaming) and a classifier
// model locked to JSON output for emotion tagging.
type Client struct {
	Chat       llms.Model
	classifier llms.Model
}

func NewClient(cfg config.OpenAIConfig) (*Client, error) {
	chatOpts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		chatOpts = append(chatOpts, openai.WithBaseURL(cfg.BaseURL))
	}
	chat, err := openai.New(chatOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat client: %w", err)
	}

	clsOpts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.ClassifierModel),
		openai.WithResponseFormat(&openai.ResponseFormat{
			Type: "json_object",
		}),
	}
	if cfg.BaseURL != "" {
		clsOpts = append(clsOpts, openai.WithBaseURL(cfg.BaseURL))
	}
	classifier, err := openai.New(clsOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create classifier client: %w", err)
	}

	return &Client{
		Chat:       chat,
		classifier: classifier,
	}, nil
}

// Generate runs a single-shot completion (briefing, fortune).
func (c *Client) Generate(ctx context.Context, system, prompt string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	}
	response, err := c.Chat.GenerateContent(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("content generation failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	return response.Choices[0].Content, nil
}
