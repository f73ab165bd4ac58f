// Package provider defines the boundary to the chat model.
//
// A Provider turns a conversation into exactly one assistant reply. Requests
// are not streamed and not retried; a failed request is reported as an Error
// carrying the run and conversation ids so the caller can decide to abort.
//
// Example usage:
//
//	model := openai.GPT4oMini(option.WithAPIKey(key))
//	reply, err := model.Provider().ChatCompletion(ctx, provider.CompletionParams{
//	    RunID:        runID,
//	    Instructions: "You are a careful pharmacology assistant.",
//	    Thread:       thread,
//	    Model:        model,
//	    Temperature:  0.2,
//	})
package provider
