package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/casualjim/rxagent/agent"
	"github.com/casualjim/rxagent/messages"
	"github.com/casualjim/rxagent/tool"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

type upperRenderer struct{}

func (upperRenderer) Render(s string) (string, error) { return strings.ToUpper(s) + "\n\n", nil }

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

func TestHook(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer
	h := NewHook(&buf, upperRenderer{}, false)

	h.OnUserPrompt(ctx, messages.User("Question: q"))
	h.OnAssistantMessage(ctx, messages.Assistant("final answer: b"))
	h.OnToolCall(ctx, agent.ToolCall{CanonicalName: "fda_label_lookup", Adapted: tool.Arguments{"drug_name": "warfarin"}, CacheHit: true})
	h.OnNudge(ctx, messages.User("hidden"))
	h.OnError(ctx, errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "User: Question: q")
	assert.Contains(t, out, "Assistant: FINAL ANSWER: B\n")
	assert.Contains(t, out, `Tool: fda_label_lookup{"drug_name"="warfarin"} (cached)`)
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Error: boom")
}

func TestHook_VerboseShowsNudges(t *testing.T) {
	var buf bytes.Buffer
	NewHook(&buf, nil, true).OnNudge(context.Background(), messages.User("pick a letter"))
	assert.Equal(t, "Nudge: pick a letter\n", buf.String())
}

func TestPrintResult(t *testing.T) {
	var buf bytes.Buffer
	PrintResult(&buf, agent.Result{FinalChoice: "C", Tools: agent.Trace{
		{Round: 0, RequestedName: "drug interactions", CanonicalName: "drug_interaction_check", Result: map[string]any{"drug_name": "x"}},
		{Round: 1, RequestedName: "nope", CanonicalName: "nope", Result: tool.Failure{Message: "tool 'nope' not allowed"}},
	}})

	out := buf.String()
	assert.Contains(t, out, "Final choice: C")
	assert.Contains(t, out, "1. round 1 drug interactions -> drug_interaction_check [ok]")
	assert.Contains(t, out, "2. round 2 nope -> nope [failed]")

	buf.Reset()
	PrintResult(&buf, agent.Result{})
	assert.Contains(t, buf.String(), "Final choice: (none)")
	assert.Contains(t, buf.String(), "No tools were called.")
}
