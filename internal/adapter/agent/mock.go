package agent

import (
	"context"
	"encoding/json"
	"strings"

	loremgen "github.com/bozaro/golorem"

	"github.com/hakivo/chatd/internal/domain"
)

// MockClient is a keyless agent for development and tests. It streams lorem
// ipsum word by word and simulates a tool round-trip for congress-flavored
// prompts.
type MockClient struct {
	generator *loremgen.Lorem
}

// NewMockClient creates a mock agent client.
func NewMockClient() *MockClient {
	return &MockClient{generator: loremgen.New()}
}

// Name identifies the backing implementation.
func (c *MockClient) Name() string { return "mock" }

// mockToolResult is the canned searchBills payload.
var mockToolResult = json.RawMessage(`{"bills":[{"number":"H.R. 1234","title":"Example Modernization Act","status":"Introduced"}]}`)

// StreamChat begins a simulated run.
func (c *MockClient) StreamChat(ctx context.Context, prompt string) (*Stream, error) {
	events := make(chan domain.AgentEvent)
	s := newStream(events)

	go func() {
		var full strings.Builder
		defer func() {
			s.finish(full.String(), nil)
			close(events)
		}()

		lower := strings.ToLower(prompt)
		if strings.Contains(lower, "bill") || strings.Contains(lower, "congress") || strings.Contains(lower, "member") {
			if !send(ctx, events, domain.AgentEvent{Type: domain.AgentEventToolCall, ToolName: "searchBills"}) {
				return
			}
			if !send(ctx, events, domain.AgentEvent{Type: domain.AgentEventToolResult, ToolName: "searchBills", Result: mockToolResult}) {
				return
			}
		}

		text := c.generator.Sentence(8, 16) + " " + c.generator.Sentence(8, 16)
		for _, word := range strings.Fields(text) {
			delta := word + " "
			full.WriteString(delta)
			if !send(ctx, events, domain.AgentEvent{Type: domain.AgentEventTextDelta, TextDelta: delta}) {
				return
			}
		}

		send(ctx, events, domain.AgentEvent{Type: domain.AgentEventFinish, FinishReason: "end_turn"})
	}()

	return s, nil
}
