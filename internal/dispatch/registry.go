package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/tmc/langchaingo/llms"

	"yof-server/internal/actions"
	"yof-server/internal/config"
)

// Handler executes a tool call on behalf of a user. Arguments have
// already passed schema validation.
type Handler func(ctx context.Context, userID uint, args map[string]any) actions.Result

type entry struct {
	schema  Schema
	handler Handler
}

// Registry manages the tools exposed to the model. Registration order
// is preserved so tool definitions are stable across requests.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string
}

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(schema Schema, handler Handler) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[schema.Name]; exists {
		return fmt.Errorf("tool already registered: %s", schema.Name)
	}
	r.entries[schema.Name] = entry{schema: schema, handler: handler}
	r.order = append(r.order, schema.Name)
	return nil
}

// Tools returns the model-facing tool definitions in registration order.
func (r *Registry) Tools() []llms.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tools := make([]llms.Tool, 0, len(r.order))
	for _, name := range r.order {
		tools = append(tools, r.entries[name].schema.Tool())
	}
	return tools
}

// Dispatch decodes and validates raw JSON arguments, then runs the
// named tool under its own timeout. Every failure mode comes back as
// an actions.Result so it can be fed to the model as a tool result.
func (r *Registry) Dispatch(ctx context.Context, userID uint, name, rawArgs string, timeout time.Duration) actions.Result {
	r.mu.RLock()
	e, exists := r.entries[name]
	r.mu.RUnlock()

	if !exists {
		config.Logger.Warnw("unknown tool requested", "tool", name)
		return actions.Result{Error: fmt.Sprintf("알 수 없는 액션입니다: %s", name)}
	}

	args := make(map[string]any)
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			config.Logger.Warnw("malformed tool arguments", "tool", name, "error", err)
			return actions.Result{Error: fmt.Sprintf("잘못된 인자 형식입니다: %v", err)}
		}
	}
	if err := e.schema.Validate(args); err != nil {
		config.Logger.Warnw("tool arguments rejected", "tool", name, "error", err)
		return actions.Result{Error: fmt.Sprintf("잘못된 인자입니다: %v", err)}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	startTime := time.Now()
	result := e.handler(timeoutCtx, userID, args)
	duration := time.Since(startTime)

	config.Logger.Infow("tool executed",
		"tool", name,
		"userId", userID,
		"duration", duration,
		"success", result.OK(),
	)
	return result
}
