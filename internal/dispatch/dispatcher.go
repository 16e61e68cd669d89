package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"yof-server/internal/actions"
	"yof-server/internal/config"
)

// Message is one turn of chat history as sent by a client.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const systemPromptFormat = `당신은 Yof(Youth's Own Friend)입니다. 당신은 사용자를 "주인님"이라고 부르며, 최고의 개인 AI 라이프 코치로서 헌신적으로 섬깁니다.

주인님: %s님
현재 시간: %s

주인님의 현재 상황:
%s

당신의 역할:
- 주인님의 개인 비서이자 라이프 코치
- 항상 "주인님"이라고 호칭하며 정중하고 친근하게 대화
- 주인님의 목표, 루틴, 일기를 관리하고 조언 제공
- 필요시 직접 데이터를 추가/수정/삭제 가능

주인님과 대화할 때는 따뜻하고 격려하는 톤을 사용하며, 필요하다면 적극적으로 도구를 사용해 주인님을 도와드리세요.

예시:
- "주인님의 새로운 목표를 추가해드렸습니다!"
- "주인님께서 오늘 정말 열심히 하셨네요!"
- "주인님의 루틴 완료를 축하드립니다!"

항상 한국어로 대화하며, 주인님의 성공을 위해 최선을 다하세요.`

// Dispatcher drives a chat turn: it streams model output, executes any
// tool calls through the registry in the order the model issued them,
// feeds the results back, and repeats until the model answers in plain
// text or the round limit is hit.
type Dispatcher struct {
	model       llms.Model
	registry    *Registry
	lib         *actions.Library
	temperature float64
	maxRounds   int
	genTimeout  time.Duration
	toolTimeout time.Duration
}

func NewDispatcher(model llms.Model, registry *Registry, lib *actions.Library, cfg *config.Config) *Dispatcher {
	return &Dispatcher{
		model:       model,
		registry:    registry,
		lib:         lib,
		temperature: cfg.OpenAI.Temperature,
		maxRounds:   cfg.Chat.MaxToolRounds,
		genTimeout:  time.Duration(cfg.Chat.GenerationTimeout) * time.Second,
		toolTimeout: time.Duration(cfg.Chat.ToolTimeout) * time.Second,
	}
}

// Run executes one chat turn and emits events on the channel. The
// channel is closed when the turn is over, whatever the outcome.
func (d *Dispatcher) Run(ctx context.Context, userID uint, username string, history []Message, events chan<- Event) {
	defer close(events)

	turnID := uuid.NewString()
	startTime := time.Now()
	config.Logger.Infow("chat turn started", "turnId", turnID, "userId", userID, "messages", len(history))
	defer func() {
		config.Logger.Infow("chat turn finished", "turnId", turnID, "userId", userID, "duration", time.Since(startTime))
	}()

	ctx, cancel := context.WithTimeout(ctx, d.genTimeout)
	defer cancel()

	snapshot := d.lib.BuildSnapshot(ctx, userID)
	system := fmt.Sprintf(systemPromptFormat, username, time.Now().Format("2006. 1. 2. 15:04:05"), snapshot)

	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(system)},
		},
	}
	for _, m := range history {
		role := llms.ChatMessageTypeHuman
		switch m.Role {
		case "assistant":
			role = llms.ChatMessageTypeAI
		case "system":
			role = llms.ChatMessageTypeSystem
		}
		messages = append(messages, llms.MessageContent{
			Role:  role,
			Parts: []llms.ContentPart{llms.TextPart(m.Content)},
		})
	}

	emit := func(e Event) bool {
		select {
		case events <- e:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for round := 0; round < d.maxRounds; round++ {
		streamed := false
		response, err := d.model.GenerateContent(ctx, messages,
			llms.WithTools(d.registry.Tools()),
			llms.WithTemperature(d.temperature),
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				if len(chunk) == 0 {
					return nil
				}
				streamed = true
				if !emit(Event{Type: EventToken, Content: string(chunk)}) {
					return ctx.Err()
				}
				return nil
			}),
		)
		if err != nil {
			config.Logger.Errorw("chat generation failed", "userId", userID, "error", err)
			emit(Event{Type: EventError, Content: "응답 생성에 실패했습니다."})
			return
		}
		if len(response.Choices) == 0 {
			emit(Event{Type: EventError, Content: "응답 생성에 실패했습니다."})
			return
		}

		choice := response.Choices[0]
		if len(choice.ToolCalls) == 0 {
			// Non-streaming backends never invoke the streaming func.
			if !streamed && choice.Content != "" {
				emit(Event{Type: EventToken, Content: choice.Content})
			}
			emit(Event{Type: EventDone})
			return
		}

		assistant := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		if choice.Content != "" {
			assistant.Parts = append(assistant.Parts, llms.TextContent{Text: choice.Content})
		}
		for _, tc := range choice.ToolCalls {
			assistant.Parts = append(assistant.Parts, tc)
		}
		messages = append(messages, assistant)

		for _, tc := range choice.ToolCalls {
			if tc.FunctionCall == nil {
				continue
			}
			if !emit(Event{
				Type:      EventToolCall,
				ToolID:    tc.ID,
				Tool:      tc.FunctionCall.Name,
				Arguments: tc.FunctionCall.Arguments,
			}) {
				return
			}

			result := d.registry.Dispatch(ctx, userID, tc.FunctionCall.Name, tc.FunctionCall.Arguments, d.toolTimeout)
			if !emit(Event{
				Type:   EventToolResult,
				ToolID: tc.ID,
				Tool:   tc.FunctionCall.Name,
				Result: &result,
			}) {
				return
			}

			payload, err := json.Marshal(result)
			if err != nil {
				payload = []byte(`{"error":"결과 직렬화에 실패했습니다."}`)
			}
			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       tc.FunctionCall.Name,
						Content:    string(payload),
					},
				},
			})
		}
	}

	config.Logger.Warnw("tool round limit reached", "userId", userID, "maxRounds", d.maxRounds)
	emit(Event{Type: EventDone})
}
