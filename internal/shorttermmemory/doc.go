// Package shorttermmemory holds the conversation history of a single question run
// together with the token usage reported by the model.
//
// Design decisions:
//   - Append only: messages are never edited or removed once added
//   - Single owner: an Aggregator belongs to exactly one run and is discarded when it returns
//   - Copy on read: Messages returns a copy so callers cannot rewrite history
//   - Usage aggregation: token counts from every completion are summed per run
//
// Example usage:
//
//	thread := shorttermmemory.New()
//	thread.AddUserPrompt(messages.User("Question: ..."))
//	thread.AddAssistantMessage(messages.Assistant("Final answer: B"))
//	thread.AddUsage(&shorttermmemory.Usage{PromptTokens: 120, CompletionTokens: 6, TotalTokens: 126})
package shorttermmemory
