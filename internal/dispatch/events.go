package dispatch

import "yof-server/internal/actions"

// EventType identifies a chat stream event.
type EventType string

const (
	EventToken      EventType = "token"
	EventToolCall   EventType = "tool_call"
	EventToolResult EventType = "tool_result"
	EventError      EventType = "error"
	EventDone       EventType = "done"
)

// Event is one unit of the chat response stream. The same events flow
// over SSE and WebSocket transports.
type Event struct {
	Type      EventType       `json:"type"`
	Content   string          `json:"content,omitempty"`
	ToolID    string          `json:"tool_id,omitempty"`
	Tool      string          `json:"tool,omitempty"`
	Arguments string          `json:"arguments,omitempty"`
	Result    *actions.Result `json:"result,omitempty"`
}
