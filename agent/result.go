package agent

import (
	"github.com/casualjim/rxagent/internal/shorttermmemory"
	"github.com/casualjim/rxagent/tool"
	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// MaxRoundsRationale is the rationale of a run that spent its round budget
// without reaching an answer.
const MaxRoundsRationale = "max rounds reached"

// Question is one multiple-choice question.
type Question struct {
	Text string
	// Options maps answer letters to answer text, in presentation order.
	Options *orderedmap.OrderedMap[string, string]
}

// ToolCall records one attempted tool call. It is never modified after it is
// added to a Trace.
type ToolCall struct {
	Round         int    `json:"round"`
	RequestedName string `json:"requested_name"`
	CanonicalName string `json:"canonical_name"`
	// Arguments is the argument text exactly as the model wrote it.
	Arguments string `json:"arguments"`
	// Adapted is nil when the call was refused before argument canonicalization.
	Adapted   tool.Arguments  `json:"adapted,omitempty"`
	Rule      string          `json:"rule,omitempty"`
	Result    any             `json:"result"`
	CacheHit  bool            `json:"cache_hit"`
	Timestamp strfmt.DateTime `json:"timestamp"`
}

// Failed reports whether the call produced a tool.Failure.
func (c ToolCall) Failed() bool {
	return tool.IsFailure(c.Result)
}

// Trace is the ordered record of the tool calls of one run.
type Trace []ToolCall

// Result is the outcome of one run.
type Result struct {
	RunID uuid.UUID `json:"run_id"`
	// FinalChoice is one of A, B, C, D, or empty when no letter was produced.
	FinalChoice string                `json:"final_choice"`
	Rationale   string                `json:"rationale"`
	Tools       Trace                 `json:"tools"`
	Usage       shorttermmemory.Usage `json:"usage"`
}
