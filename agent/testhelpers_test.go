package agent

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/casualjim/rxagent/internal/shorttermmemory"
	"github.com/casualjim/rxagent/messages"
	"github.com/casualjim/rxagent/provider"
	"github.com/casualjim/rxagent/tool"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// request is what the scripted provider saw for one completion.
type request struct {
	Temperature float64
	Messages    []messages.Message
}

// scriptedModel replays canned replies and records every request.
type scriptedModel struct {
	mu       sync.Mutex
	replies  []string
	err      error
	requests []request
}

func (m *scriptedModel) Name() string                { return "scripted" }
func (m *scriptedModel) Provider() provider.Provider { return m }

func (m *scriptedModel) ChatCompletion(_ context.Context, params provider.CompletionParams) (provider.Completion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, request{Temperature: params.Temperature, Messages: params.Thread.Messages()})
	if m.err != nil {
		return provider.Completion{}, m.err
	}
	if len(m.requests) > len(m.replies) {
		return provider.Completion{}, errors.New("script exhausted")
	}
	return provider.Completion{
		Content: m.replies[len(m.requests)-1],
		Usage:   &shorttermmemory.Usage{PromptTokens: 10, CompletionTokens: 2, TotalTokens: 12},
	}, nil
}

// lastMessage returns the last message the model saw on request i.
func (m *scriptedModel) lastMessage(i int) messages.Message {
	msgs := m.requests[i].Messages
	return msgs[len(msgs)-1]
}

type fakeExecutor struct {
	calls  int
	result func(name string, args tool.Arguments) (any, error)
}

func (e *fakeExecutor) Run(_ context.Context, name string, args tool.Arguments) (any, error) {
	e.calls++
	if e.result == nil {
		return map[string]any{"drug_name": args.DrugName(), "section": []any{"label text for " + name}}, nil
	}
	return e.result(name, args)
}

type recordingHook struct {
	prompts   []messages.Message
	replies   []messages.Message
	toolCalls []ToolCall
	nudges    []messages.Message
	results   []Result
	errs      []error
}

func (h *recordingHook) OnUserPrompt(_ context.Context, m messages.Message) {
	h.prompts = append(h.prompts, m)
}

func (h *recordingHook) OnAssistantMessage(_ context.Context, m messages.Message) {
	h.replies = append(h.replies, m)
}

func (h *recordingHook) OnToolCall(_ context.Context, c ToolCall) {
	h.toolCalls = append(h.toolCalls, c)
}

func (h *recordingHook) OnNudge(_ context.Context, m messages.Message) {
	h.nudges = append(h.nudges, m)
}

func (h *recordingHook) OnResult(_ context.Context, r Result) {
	h.results = append(h.results, r)
}

func (h *recordingHook) OnError(_ context.Context, err error) {
	h.errs = append(h.errs, err)
}

type harness struct {
	agent    *Agent
	model    *scriptedModel
	executor *fakeExecutor
	hook     *recordingHook
}

func newHarness(t *testing.T, maxRounds int, replies ...string) *harness {
	t.Helper()
	h := &harness{
		model:    &scriptedModel{replies: replies},
		executor: &fakeExecutor{},
		hook:     &recordingHook{},
	}
	invoker, err := tool.NewInvoker(tool.WithExecutor(h.executor), tool.WithCache(newMemoryCache()))
	require.NoError(t, err)

	h.agent, err = New(
		Model(h.model),
		Invoker(invoker),
		MaxRounds(maxRounds),
		WithHook(h.hook),
	)
	require.NoError(t, err)
	return h
}

type memoryCache struct {
	entries map[string]any
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]any{}}
}

func (m *memoryCache) Get(name string, args map[string]any) (any, bool, error) {
	v, ok := m.entries[name+"|"+tool.Arguments(args).DrugName()]
	return v, ok, nil
}

func (m *memoryCache) Put(name string, args map[string]any, result any) error {
	m.entries[name+"|"+tool.Arguments(args).DrugName()] = result
	return nil
}

func options(pairs ...string) *orderedmap.OrderedMap[string, string] {
	om := orderedmap.New[string, string]()
	for i := 0; i+1 < len(pairs); i += 2 {
		om.Set(pairs[i], pairs[i+1])
	}
	return om
}

var serotoninQuestion = Question{
	Text:    "A patient is taking venlafaxine. Which OTC supplement should be avoided due to risk of serotonin syndrome?",
	Options: options("A", "Vitamin D", "B", "St. John's Wort", "C", "Omega-3", "D", "Calcium"),
}

var plainQuestion = Question{
	Text:    "Pick the option that is best.",
	Options: options("A", "Amoxicillin; 500 mg", "B", "Doxycycline, 100 mg", "C", "Azithromycin", "D", "Cefalexin"),
}
