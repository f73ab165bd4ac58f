package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/casualjim/rxagent/directive"
	"github.com/casualjim/rxagent/internal/shorttermmemory"
	"github.com/casualjim/rxagent/messages"
	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/casualjim/rxagent/provider"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// forcedTemperature is the sampling temperature of the forced answer prompt.
const forcedTemperature = 0

// run is the state of one question. It is owned by a single Run call.
type run struct {
	*Agent
	id     uuid.UUID
	thread *shorttermmemory.Aggregator
	trace  Trace
	log    *slog.Logger
}

// Run answers one question. Tool failures never end a run; an error is
// returned only when the model cannot be reached, together with the partial
// result.
func (a *Agent) Run(ctx context.Context, q Question) (Result, error) {
	r := &run{
		Agent:  a,
		id:     uuid.Must(uuid.NewV7()),
		thread: shorttermmemory.New(),
	}
	r.log = slog.With(slogx.LoggerName("agent"), slogx.RunID(r.id))

	prompt := messages.User(UserPrompt(q))
	r.thread.AddUserPrompt(prompt)
	r.hook.OnUserPrompt(ctx, prompt)

	for round := range r.maxRounds {
		r.log.DebugContext(ctx, "requesting completion", slogx.Round(round))
		out, err := r.complete(ctx, r.temperature)
		if err != nil {
			return r.fail(ctx, err)
		}

		if d := directive.Parse(out); d.Found() {
			r.callTool(ctx, round, out, d)
			continue
		}
		r.thread.AddAssistantMessage(messages.Assistant(out))

		if letter, ok := directive.FinalAnswer(out); ok {
			return r.finish(ctx, letter, out), nil
		}

		if round == 0 && len(r.trace) == 0 && round+1 < r.maxRounds {
			if toolName, ok := r.hints.Suggest(q.Text); ok {
				r.log.DebugContext(ctx, "showing a one-shot tool call", slogx.Tool(toolName))
				r.nudge(ctx, OneShotExample(toolName, q.Options))
				continue
			}
		}

		return r.forceAnswer(ctx, out)
	}

	r.log.InfoContext(ctx, "round budget exhausted", slog.Int("tool_calls", len(r.trace)))
	return r.finish(ctx, "", MaxRoundsRationale), nil
}

func (r *run) complete(ctx context.Context, temperature float64) (string, error) {
	reply, err := r.model.Provider().ChatCompletion(ctx, provider.CompletionParams{
		RunID:        r.id,
		Instructions: r.instructions,
		Thread:       r.thread,
		Model:        r.model,
		Temperature:  temperature,
	})
	if err != nil {
		return "", err
	}
	r.thread.AddUsage(reply.Usage)
	r.hook.OnAssistantMessage(ctx, messages.Assistant(reply.Content))
	return reply.Content, nil
}

func (r *run) callTool(ctx context.Context, round int, out string, d directive.Directive) {
	name := r.invoker.Tables().CanonicalName(d.Name)
	inv := r.invoker.Invoke(ctx, name, d.Args)

	call := ToolCall{
		Round:         round,
		RequestedName: d.Name,
		CanonicalName: name,
		Arguments:     d.RawArgs,
		Adapted:       inv.Args,
		Result:        inv.Result,
		CacheHit:      inv.CacheHit,
		Timestamp:     strfmt.DateTime(time.Now()),
	}
	if inv.Args != nil {
		call.Rule = inv.Rule.String()
	}
	r.trace = append(r.trace, call)
	r.hook.OnToolCall(ctx, call)
	r.log.DebugContext(ctx, "tool call", slogx.Round(round), slogx.Tool(name),
		slog.Bool("failed", call.Failed()), slog.Bool("cache_hit", call.CacheHit))

	r.thread.AddAssistantMessage(messages.Assistant(out))
	r.thread.AddUserPrompt(messages.User(ToolResultMessage(name, inv.Result)))
	if call.Failed() {
		r.nudge(ctx, ErrorNudge)
	}
}

func (r *run) nudge(ctx context.Context, content string) {
	msg := messages.User(content)
	r.thread.AddUserPrompt(msg)
	r.hook.OnNudge(ctx, msg)
}

// forceAnswer asks once for a bare answer line. The rationale stays the reply
// that preceded the forcing.
func (r *run) forceAnswer(ctx context.Context, rationale string) (Result, error) {
	r.nudge(ctx, ForcedPrompt)
	forced, err := r.complete(ctx, forcedTemperature)
	if err != nil {
		return r.fail(ctx, err)
	}
	r.thread.AddAssistantMessage(messages.Assistant(forced))

	letter, _ := directive.LastLetter(forced)
	return r.finish(ctx, letter, rationale), nil
}

func (r *run) result(choice, rationale string) Result {
	return Result{
		RunID:       r.id,
		FinalChoice: choice,
		Rationale:   rationale,
		Tools:       r.trace,
		Usage:       r.thread.Usage(),
	}
}

func (r *run) finish(ctx context.Context, choice, rationale string) Result {
	res := r.result(choice, rationale)
	r.hook.OnResult(ctx, res)
	return res
}

func (r *run) fail(ctx context.Context, err error) (Result, error) {
	r.hook.OnError(ctx, err)
	return r.result("", ""), err
}
