package tool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"reflect"
	"slices"

	"github.com/casualjim/rxagent/pkg/slogx"
	"github.com/fogfish/opts"
	"github.com/tidwall/gjson"
)

// ErrUnknownTool is returned by executors asked to run a tool they do not know.
var ErrUnknownTool = errors.New("unknown tool")

// Executor runs a catalog tool with canonical arguments.
type Executor interface {
	Run(ctx context.Context, name string, args Arguments) (any, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, name string, args Arguments) (any, error)

func (f ExecutorFunc) Run(ctx context.Context, name string, args Arguments) (any, error) {
	return f(ctx, name, args)
}

// ResultCache memoizes successful tool results by tool name and canonical arguments.
type ResultCache interface {
	Get(tool string, args map[string]any) (any, bool, error)
	Put(tool string, args map[string]any, result any) error
}

// Invocation is the outcome of one Invoke call.
type Invocation struct {
	Tool string
	// Args is nil when the call was refused before canonicalization.
	Args     Arguments
	Rule     Rule
	Result   any
	CacheHit bool
}

// Failed reports whether the invocation produced a Failure.
func (i Invocation) Failed() bool {
	return IsFailure(i.Result)
}

// Invoker gates, adapts and memoizes tool calls.
type Invoker struct {
	executor Executor
	cache    ResultCache
	tables   *Tables
	allowed  []string
}

var (
	// WithExecutor sets the capability that actually runs tools.
	WithExecutor = opts.ForName[Invoker, Executor]("executor")
	// WithCache sets the result cache; without one every call reaches the executor.
	WithCache = opts.ForName[Invoker, ResultCache]("cache")
	// WithTables replaces the embedded canonicalization tables.
	WithTables = opts.ForName[Invoker, *Tables]("tables")
)

// AllowTools replaces the allow-list taken from the tables.
func AllowTools(names ...string) opts.Option[Invoker] {
	return opts.Type[Invoker](func(o *Invoker) error {
		allowed := slices.Clone(names)
		slices.Sort(allowed)
		o.allowed = slices.Compact(allowed)
		return nil
	})
}

// NewInvoker creates an Invoker. An executor is required.
func NewInvoker(options ...opts.Option[Invoker]) (*Invoker, error) {
	inv := &Invoker{}
	if err := opts.Apply(inv, options); err != nil {
		return nil, err
	}
	if inv.executor == nil {
		return nil, fmt.Errorf("tool invoker: an executor is required")
	}
	if inv.tables == nil {
		inv.tables = DefaultTables()
	}
	if inv.allowed == nil {
		inv.allowed = inv.tables.AllowedTools()
	}
	return inv, nil
}

// Allowed returns the sorted allow-list.
func (v *Invoker) Allowed() []string {
	return slices.Clone(v.allowed)
}

// Tables returns the canonicalization tables in use.
func (v *Invoker) Tables() *Tables {
	return v.tables
}

// Invoke runs the tool called name with the raw arguments parsed from a
// directive. A raw value that does not exist, or is JSON null, means the
// arguments failed to parse. Invoke never returns a Go error: every refusal or
// failure is carried in the returned Invocation as a Failure.
func (v *Invoker) Invoke(ctx context.Context, name string, raw gjson.Result) Invocation {
	log := slog.With(slogx.LoggerName("tool.invoker"), slogx.Tool(name))

	if _, ok := slices.BinarySearch(v.allowed, name); !ok {
		log.Info("refusing tool outside the allow-list")
		return Invocation{Tool: name, Result: notAllowed(name, v.Allowed())}
	}
	if !raw.Exists() || raw.Type == gjson.Null {
		return Invocation{Tool: name, Result: Failure{Message: msgInvalidArguments}}
	}

	res := v.tables.CanonicalArguments(raw)
	inv := Invocation{Tool: name, Args: res.Args, Rule: res.Rule}
	if !res.Resolved() {
		log.Debug("no drug name found in arguments", slog.String("rule", res.Rule.String()))
	}

	if v.cache != nil {
		cached, ok, err := v.cache.Get(name, res.Args)
		if err != nil {
			log.Warn("failed to read tool cache", slogx.Error(err))
		}
		if ok {
			inv.Result, inv.CacheHit = cached, true
			return inv
		}
	}

	result, err := v.executor.Run(ctx, name, res.Args)
	if err != nil {
		log.Warn("tool execution failed", slogx.Error(err))
		inv.Result = Failure{Message: err.Error()}
		return inv
	}
	if isNil(result) {
		inv.Result = Failure{Message: msgNoResult}
		return inv
	}

	inv.Result = result
	if v.cache != nil {
		if err := v.cache.Put(name, res.Args, result); err != nil {
			log.Warn("failed to write tool cache", slogx.Error(err))
		}
	}
	return inv
}

// isNil reports whether v is nil or a nil map, slice, pointer or interface
// wrapped in v.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
