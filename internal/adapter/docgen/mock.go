package docgen

import (
	"context"
	"fmt"
	"strings"

	loremgen "github.com/bozaro/golorem"

	"github.com/hakivo/chatd/internal/domain"
)

// MockGenerator is a keyless document generator for development and tests.
type MockGenerator struct {
	generator *loremgen.Lorem
	// paragraphs controls the size of generated documents.
	paragraphs int
}

// NewMockGenerator creates a mock generator.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{generator: loremgen.New(), paragraphs: 3}
}

// Name identifies the backing implementation.
func (g *MockGenerator) Name() string { return "mock" }

// Generate streams a lorem ipsum document through the real phase sequence.
func (g *MockGenerator) Generate(ctx context.Context, req Request) (<-chan domain.DocEvent, error) {
	events := make(chan domain.DocEvent)

	go func() {
		defer close(events)

		if !sendDoc(ctx, events, domain.DocEvent{
			Type:    domain.DocEventPhase,
			Phase:   domain.PhaseGathering,
			Message: "Collecting bills, news, and member data",
		}) {
			return
		}
		if !sendDoc(ctx, events, domain.DocEvent{
			Type:    domain.DocEventPhase,
			Phase:   domain.PhaseGenerating,
			Message: "Writing the document",
		}) {
			return
		}

		var content strings.Builder
		title := req.Artifact.Title
		if title == "" {
			title = "Generated Document"
		}
		heading := fmt.Sprintf("# %s\n\n", title)
		content.WriteString(heading)
		if !sendDoc(ctx, events, domain.DocEvent{Type: domain.DocEventContent, Content: heading}) {
			return
		}

		for i := 0; i < g.paragraphs; i++ {
			chunk := g.generator.Paragraph(2, 4) + "\n\n"
			content.WriteString(chunk)
			if !sendDoc(ctx, events, domain.DocEvent{Type: domain.DocEventContent, Content: chunk}) {
				return
			}
		}

		result := *req.Artifact
		result.Content = content.String()
		sendDoc(ctx, events, domain.DocEvent{Type: domain.DocEventComplete, Result: &result})
	}()

	return events, nil
}
