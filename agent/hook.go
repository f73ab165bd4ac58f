package agent

import (
	"context"
	"log/slog"
	"slices"

	"github.com/casualjim/rxagent/messages"
	"github.com/casualjim/rxagent/pkg/jsonx"
	"github.com/casualjim/rxagent/pkg/slogx"
)

// Hook observes a run. Implementations must handle every event; the methods
// are called synchronously from the loop.
type Hook interface {
	// OnUserPrompt receives the opening question message.
	OnUserPrompt(context.Context, messages.Message)
	// OnAssistantMessage receives every model reply, forced replies included.
	OnAssistantMessage(context.Context, messages.Message)
	// OnToolCall receives each Trace entry as it is recorded.
	OnToolCall(context.Context, ToolCall)
	// OnNudge receives the messages the loop adds on its own: one-shot
	// examples, error nudges and the forced answer prompt.
	OnNudge(context.Context, messages.Message)
	OnResult(context.Context, Result)
	OnError(context.Context, error)
}

// LoggingHook logs every event through slog at debug level. Errors are logged
// at error level.
func LoggingHook() Hook {
	return loggingHook{}
}

type loggingHook struct{}

func (loggingHook) OnUserPrompt(ctx context.Context, msg messages.Message) {
	slog.DebugContext(ctx, "User prompt", slog.String("content", msg.Content))
}

func (loggingHook) OnAssistantMessage(ctx context.Context, msg messages.Message) {
	slog.DebugContext(ctx, "Assistant message", slog.String("content", msg.Content))
}

func (loggingHook) OnToolCall(ctx context.Context, call ToolCall) {
	slog.DebugContext(ctx, "Tool call", slogx.Tool(call.CanonicalName), slog.String("call", jsonx.String(call)))
}

func (loggingHook) OnNudge(ctx context.Context, msg messages.Message) {
	slog.DebugContext(ctx, "Nudge", slog.String("content", msg.Content))
}

func (loggingHook) OnResult(ctx context.Context, result Result) {
	slog.DebugContext(ctx, "completion result", slog.String("final_choice", result.FinalChoice), slog.Int("tool_calls", len(result.Tools)))
}

func (loggingHook) OnError(ctx context.Context, err error) {
	slog.ErrorContext(ctx, "completion error", slogx.Error(err))
}

// NewCompositeHook combines hooks into one.
func NewCompositeHook(hooks ...Hook) Hook {
	return CompositeHook(slices.DeleteFunc(hooks, func(h Hook) bool { return h == nil }))
}

// CompositeHook calls each of its hooks in order.
type CompositeHook []Hook

func (c CompositeHook) OnUserPrompt(ctx context.Context, msg messages.Message) {
	for h := range slices.Values(c) {
		h.OnUserPrompt(ctx, msg)
	}
}

func (c CompositeHook) OnAssistantMessage(ctx context.Context, msg messages.Message) {
	for h := range slices.Values(c) {
		h.OnAssistantMessage(ctx, msg)
	}
}

func (c CompositeHook) OnToolCall(ctx context.Context, call ToolCall) {
	for h := range slices.Values(c) {
		h.OnToolCall(ctx, call)
	}
}

func (c CompositeHook) OnNudge(ctx context.Context, msg messages.Message) {
	for h := range slices.Values(c) {
		h.OnNudge(ctx, msg)
	}
}

func (c CompositeHook) OnResult(ctx context.Context, result Result) {
	for h := range slices.Values(c) {
		h.OnResult(ctx, result)
	}
}

func (c CompositeHook) OnError(ctx context.Context, err error) {
	for h := range slices.Values(c) {
		h.OnError(ctx, err)
	}
}
