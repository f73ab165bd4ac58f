package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/casualjim/rxagent/messages"
	"github.com/stretchr/testify/assert"
)

func TestCompositeHook(t *testing.T) {
	first, second := &recordingHook{}, &recordingHook{}
	hook := NewCompositeHook(first, nil, second)
	ctx := context.Background()

	hook.OnUserPrompt(ctx, messages.User("q"))
	hook.OnAssistantMessage(ctx, messages.Assistant("a"))
	hook.OnToolCall(ctx, ToolCall{CanonicalName: "t"})
	hook.OnNudge(ctx, messages.User(ErrorNudge))
	hook.OnResult(ctx, Result{FinalChoice: "B"})
	hook.OnError(ctx, errors.New("boom"))

	for _, h := range []*recordingHook{first, second} {
		assert.Len(t, h.prompts, 1)
		assert.Len(t, h.replies, 1)
		assert.Len(t, h.toolCalls, 1)
		assert.Len(t, h.nudges, 1)
		assert.Equal(t, "B", h.results[0].FinalChoice)
		assert.Len(t, h.errs, 1)
	}
}

func TestWithHook_Accumulates(t *testing.T) {
	first, second := &recordingHook{}, &recordingHook{}
	h := newHarness(t, 1, "Final answer: A")
	a, err := New(Model(h.model), Invoker(h.agent.invoker), WithHook(first), WithHook(second))
	assert.NoError(t, err)

	_, err = a.Run(context.Background(), plainQuestion)
	assert.NoError(t, err)
	assert.Len(t, first.results, 1)
	assert.Len(t, second.results, 1)
}

func TestLoggingHook(t *testing.T) {
	hook := LoggingHook()
	ctx := context.Background()
	assert.NotPanics(t, func() {
		hook.OnUserPrompt(ctx, messages.User("q"))
		hook.OnToolCall(ctx, ToolCall{CanonicalName: "t", Result: map[string]any{"k": "v"}})
		hook.OnResult(ctx, Result{})
		hook.OnError(ctx, errors.New("boom"))
	})
}
