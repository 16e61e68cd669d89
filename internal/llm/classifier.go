package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"

	"yof-server/internal/coach"
)

const classifierSystemPrompt = `You are an emotion classifier for a Korean journaling app.
Read the journal entry and pick the single emotion that best matches it.
You must choose exactly one of: 행복, 기쁨, 보통, 슬픔, 화남.
If no emotion fits, answer N/A.
Respond with a JSON object of the form {"emotion": "<label>"} and nothing else.`

type emotionResponse struct {
	Emotion string `json:"emotion"`
}

// Classify tags a journal entry with one of the fixed emotion labels.
// Any model output outside the label set comes back as N/A.
func (c *Client) Classify(ctx context.Context, entryText string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(classifierSystemPrompt)},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(entryText)},
		},
	}

	response, err := c.classifier.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("emotion classification failed: %w", err)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}

	var parsed emotionResponse
	raw := strings.TrimSpace(response.Choices[0].Content)
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "", fmt.Errorf("failed to parse classifier response %q: %w", raw, err)
	}
	return coach.NormalizeEmotion(parsed.Emotion), nil
}
