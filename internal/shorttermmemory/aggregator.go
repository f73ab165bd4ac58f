package shorttermmemory

import (
	"iter"
	"slices"

	"github.com/casualjim/rxagent/messages"
	"github.com/google/uuid"
)

// AggregatedMessages is an ordered collection of conversation messages.
type AggregatedMessages []messages.Message

// Len returns the number of messages in the collection.
func (a AggregatedMessages) Len() int {
	return len(a)
}

// New creates an empty Aggregator with a fresh version 7 identifier.
func New() *Aggregator {
	return &Aggregator{
		id:       uuid.Must(uuid.NewV7()),
		messages: make(AggregatedMessages, 0),
	}
}

// Aggregator manages the messages of one conversation and the usage statistics
// reported while producing them. It is not safe for concurrent use; a conversation
// is driven by a single goroutine.
type Aggregator struct {
	id       uuid.UUID
	messages AggregatedMessages
	usage    Usage
}

// ID returns the unique identifier of this aggregator.
func (a *Aggregator) ID() uuid.UUID {
	return a.id
}

// Len returns the total number of messages currently held by the aggregator.
func (a *Aggregator) Len() int {
	return a.messages.Len()
}

// Messages returns a copy of all messages in the aggregator.
func (a *Aggregator) Messages() AggregatedMessages {
	return slices.Clone(a.messages)
}

// MessagesIter returns an iterator over all messages in the aggregator
// without copying them.
func (a *Aggregator) MessagesIter() iter.Seq[messages.Message] {
	return slices.Values(a.messages)
}

// AddUserPrompt appends a user message.
func (a *Aggregator) AddUserPrompt(m messages.Message) {
	m.Role = messages.RoleUser
	a.add(m)
}

// AddAssistantMessage appends a model reply.
func (a *Aggregator) AddAssistantMessage(m messages.Message) {
	m.Role = messages.RoleAssistant
	a.add(m)
}

func (a *Aggregator) add(m messages.Message) {
	a.messages = append(a.messages, m)
}

// Usage returns the token usage accumulated so far.
func (a *Aggregator) Usage() Usage {
	return a.usage
}

// AddUsage adds the token usage of one completion to the running total.
func (a *Aggregator) AddUsage(u *Usage) {
	a.usage.AddUsage(u)
}
