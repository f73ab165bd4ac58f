package agent

import (
	"fmt"

	"github.com/casualjim/rxagent/hint"
	"github.com/casualjim/rxagent/provider"
	"github.com/casualjim/rxagent/tool"
	"github.com/fogfish/opts"
)

const (
	// DefaultMaxRounds is the round budget when none is configured.
	DefaultMaxRounds = 4
	// DefaultTemperature is the sampling temperature of regular rounds.
	DefaultTemperature = 0.2
)

// Agent answers questions by negotiating tool calls with a model. An Agent
// holds no per-question state and can run many questions, one at a time or
// concurrently.
type Agent struct {
	model        provider.Model
	instructions string
	maxRounds    int
	temperature  float64
	invoker      *tool.Invoker
	hints        *hint.Engine
	hook         Hook
}

var (
	// Model sets the chat model.
	Model = opts.ForName[Agent, provider.Model]("model")
	// Instructions replaces the system prompt.
	Instructions = opts.ForName[Agent, string]("instructions")
	// MaxRounds sets the round budget.
	MaxRounds = opts.ForName[Agent, int]("maxRounds")
	// Temperature sets the sampling temperature of regular rounds.
	Temperature = opts.ForName[Agent, float64]("temperature")
	// Invoker sets the tool invoker.
	Invoker = opts.ForName[Agent, *tool.Invoker]("invoker")
	// Hints replaces the embedded hint rules.
	Hints = opts.ForName[Agent, *hint.Engine]("hints")
)

// WithHook registers hooks that observe every run. Multiple hooks are called in order.
func WithHook(hooks ...Hook) opts.Option[Agent] {
	return opts.Type[Agent](func(o *Agent) error {
		if o.hook != nil {
			hooks = append([]Hook{o.hook}, hooks...)
		}
		o.hook = NewCompositeHook(hooks...)
		return nil
	})
}

// New creates an Agent. A model and an invoker are required.
func New(options ...opts.Option[Agent]) (*Agent, error) {
	a := &Agent{
		instructions: SystemPrompt,
		maxRounds:    DefaultMaxRounds,
		temperature:  DefaultTemperature,
		hints:        hint.Default(),
	}
	if err := opts.Apply(a, options); err != nil {
		return nil, err
	}

	if a.model == nil {
		return nil, fmt.Errorf("agent: a model is required")
	}
	if a.invoker == nil {
		return nil, fmt.Errorf("agent: a tool invoker is required")
	}
	if a.maxRounds < 1 {
		return nil, fmt.Errorf("agent: max rounds must be at least 1, got %d", a.maxRounds)
	}
	if a.hook == nil {
		a.hook = NewCompositeHook()
	}
	return a, nil
}

// MaxRounds returns the round budget.
func (a *Agent) MaxRounds() int {
	return a.maxRounds
}

// ModelName returns the name of the chat model.
func (a *Agent) ModelName() string {
	return a.model.Name()
}
