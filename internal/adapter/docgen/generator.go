// Package docgen provides clients for the document/slide generator backend.
package docgen

import (
	"context"

	"github.com/hakivo/chatd/internal/domain"
)

// Request carries everything the generator needs for one document.
type Request struct {
	// Artifact holds the document identity and metadata settled by the
	// classifier; the generator fills in content.
	Artifact *domain.Artifact

	SystemPrompt string
	UserPrompt   string
}

// Generator produces a document as a finite event stream of phase markers,
// incremental content, and a completion marker. The channel is closed by
// the producer when generation ends; cancelling ctx aborts generation.
type Generator interface {
	Generate(ctx context.Context, req Request) (<-chan domain.DocEvent, error)
	Name() string
}

// sendDoc delivers one event, giving up when ctx is cancelled.
func sendDoc(ctx context.Context, out chan<- domain.DocEvent, ev domain.DocEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
