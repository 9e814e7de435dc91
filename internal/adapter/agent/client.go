// Package agent provides clients for the tool-using conversational agent.
// The service consumes the agent purely as an event stream; the reasoning
// and tool-execution loop stays behind this boundary.
package agent

import (
	"context"

	"github.com/hakivo/chatd/internal/domain"
)

// Client starts a conversational agent run for a composed prompt.
type Client interface {
	// StreamChat begins a run and returns its event stream. The stream's
	// channel is closed by the producer when the run ends; cancelling ctx
	// aborts the run, including in-flight tool execution.
	StreamChat(ctx context.Context, prompt string) (*Stream, error)

	// Name identifies the backing implementation.
	Name() string
}

// Stream couples the agent's event stream with its lazily resolved
// full-text result.
type Stream struct {
	// Events yields upstream events in production order. Unbuffered: the
	// producer cannot run ahead of the consumer.
	Events <-chan domain.AgentEvent

	done chan struct{}
	full string
	err  error
}

// newStream pairs an event channel with its completion signal. The producer
// must call finish exactly once, after its last send and before closing the
// channel is observed by consumers of FullText.
func newStream(events <-chan domain.AgentEvent) *Stream {
	return &Stream{Events: events, done: make(chan struct{})}
}

// finish records the run's buffered full text and terminal error.
func (s *Stream) finish(full string, err error) {
	s.full = full
	s.err = err
	close(s.done)
}

// FullText blocks until the run completes and returns the complete
// assistant text. It is the last-resort fallback when streaming produced no
// narrative content.
func (s *Stream) FullText(ctx context.Context) (string, error) {
	select {
	case <-s.done:
		return s.full, s.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
