/*
Package agent runs the tool-call negotiation loop for one multiple-choice
question.

Each round asks the model for one reply and classifies it:

 1. Tool requested
    The reply opens with a CALL directive. The tool name is canonicalized, the
    call goes through the tool.Invoker and the result is fed back as a user
    message. The call is recorded in the Trace.

 2. Answer given
    The reply contains "Final answer: X". The run ends with that letter and
    the reply as rationale.

 3. No action
    On the first round, when the hint engine knows a relevant tool, the model
    is shown a one-shot example call and the loop goes on. Otherwise the model
    is asked once, at temperature 0, for a single "Final answer: X" line and
    the last standalone letter of that reply ends the run.

A run that spends its round budget on tool calls ends with an empty choice and
the MaxRoundsRationale. The forced re-prompt of the no-action path is the only
request issued beyond the round budget.

Example usage:

	a, err := agent.New(
		agent.Model(openai.GPT4oMini()),
		agent.Invoker(invoker),
		agent.MaxRounds(3),
	)
	res, err := a.Run(ctx, agent.Question{Text: q, Options: options})
	fmt.Println(res.FinalChoice, len(res.Tools))
*/
package agent
