package agent

import (
	"fmt"
	"strings"

	"github.com/casualjim/rxagent/pkg/jsonx"
	"github.com/casualjim/rxagent/tool"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// SystemPrompt is the default instruction sent ahead of every conversation.
const SystemPrompt = `You are a therapeutics assistant answering multiple-choice pharmacology questions.
Prioritize safety: contraindications, interactions, renal/hepatic dose adjustments, pregnancy/lactation.

If you need external data, issue a tool call using EXACTLY this format, alone in your reply:
CALL <tool_name> <json-args>
Preferred tools: FDA_get_drug_interactions_by_drug_name, FDA_get_contraindications_by_drug_name, FDA_get_pregnancy_effects_info_by_drug_name.
Tool arguments take the form {"drug_name": "<generic or brand name>"}.

Otherwise give a brief justification (no step-by-step chain-of-thought) and end with one line:
Final answer: X
where X is the letter of the chosen option.`

// ForcedPrompt demands a bare answer line when the model neither called a tool
// nor answered.
const ForcedPrompt = `Based on the conversation above, output exactly one line of the form "Final answer: X" where X is one of A, B, C or D. No explanation, no reasoning, no additional text.`

// ErrorNudge follows a failed tool call.
const ErrorNudge = "Tool output unavailable. Proceed using clinical knowledge and choose the final letter."

// maxExampleOptions bounds the drugs used to build the one-shot example.
const maxExampleOptions = 2

// UserPrompt renders the opening user message of a run.
func UserPrompt(q Question) string {
	options := "{}"
	if q.Options != nil && q.Options.Len() > 0 {
		options = jsonx.String(q.Options)
	}
	return fmt.Sprintf("Question:\n%s\n\nOptions:\n%s", q.Text, options)
}

// ToolResultMessage renders a tool result for the model.
func ToolResultMessage(toolName string, result any) string {
	return fmt.Sprintf("[%s RESULT]\n%s\nUse it.", toolName, jsonx.String(result))
}

// OneShotExample shows the model what a call to toolName looks like, using
// drug names taken from the first answer options.
func OneShotExample(toolName string, options *orderedmap.OrderedMap[string, string]) string {
	drugs := exampleDrugs(options)
	if len(drugs) == 0 {
		drugs = []string{"<drug name>"}
	}

	var b strings.Builder
	b.WriteString("You may look the answer options up before answering. A tool call is a single line, for example:\n")
	for _, drug := range drugs {
		fmt.Fprintf(&b, "CALL %s %s\n", toolName, jsonx.String(tool.Arguments{tool.DrugNameKey: drug}))
	}
	b.WriteString("Reply with exactly one such line to call a tool, or end your answer with \"Final answer: X\".")
	return b.String()
}

// exampleDrugs takes the leading name of up to two options. "Warfarin; aspirin"
// and "Warfarin, 5 mg" both yield "Warfarin".
func exampleDrugs(options *orderedmap.OrderedMap[string, string]) []string {
	if options == nil {
		return nil
	}
	var drugs []string
	for pair := options.Oldest(); pair != nil && len(drugs) < maxExampleOptions; pair = pair.Next() {
		name, _, _ := strings.Cut(pair.Value, ";")
		name, _, _ = strings.Cut(name, ",")
		if name = strings.TrimSpace(name); name != "" {
			drugs = append(drugs, name)
		}
	}
	return drugs
}
