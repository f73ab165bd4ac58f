package provider

import (
	"context"

	"github.com/casualjim/rxagent/internal/shorttermmemory"
	"github.com/google/uuid"
)

// Provider requests completions from a chat model service.
type Provider interface {
	ChatCompletion(context.Context, CompletionParams) (Completion, error)
}

// Model names a chat model and the provider that serves it.
type Model interface {
	Name() string
	Provider() Provider
}

// CompletionParams encapsulates all parameters needed for a chat completion request.
type CompletionParams struct {
	// RunID identifies the question run this request belongs to.
	RunID uuid.UUID

	// Instructions is sent as the leading system message.
	Instructions string

	// Thread contains the conversation history
	Thread *shorttermmemory.Aggregator

	// Model specifies which model to use for this completion
	Model Model

	// Temperature is the sampling temperature. Zero is sent as an explicit 0.
	Temperature float64

	// Prevents unkeyed literals
	_ struct{}
}

// Completion is the reply to one request.
type Completion struct {
	Content      string
	FinishReason string
	// Usage is nil when the service reported none.
	Usage *shorttermmemory.Usage
}
