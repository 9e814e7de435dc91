package docgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/apperr"
	"github.com/hakivo/chatd/internal/domain"
)

// AnthropicGenerator produces documents on the Anthropic Messages API.
type AnthropicGenerator struct {
	client *anthropic.Client
	model  string
	log    *zap.SugaredLogger
}

// NewAnthropicGenerator creates the real document generator.
func NewAnthropicGenerator(apiKey, model string, log *zap.SugaredLogger) (*AnthropicGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set: %w", apperr.ErrConfiguration)
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicGenerator{client: &client, model: model, log: log}, nil
}

// Name identifies the backing implementation.
func (g *AnthropicGenerator) Name() string { return "anthropic" }

// Generate starts document generation and returns its event stream.
func (g *AnthropicGenerator) Generate(ctx context.Context, req Request) (<-chan domain.DocEvent, error) {
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

		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(g.model),
			MaxTokens: 8192,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserPrompt)),
			},
			System: []anthropic.TextBlockParam{
				{Type: "text", Text: req.SystemPrompt},
			},
		}

		stream := g.client.Messages.NewStreaming(ctx, params)
		message := anthropic.Message{}
		var content strings.Builder
		announced := false

		for stream.Next() {
			event := stream.Current()
			if err := message.Accumulate(event); err != nil {
				sendDoc(ctx, events, domain.DocEvent{Type: domain.DocEventError, Err: fmt.Errorf("failed to accumulate message: %w", err)})
				return
			}

			switch e := event.AsAny().(type) {
			case anthropic.MessageStartEvent:
				if !announced {
					announced = true
					if !sendDoc(ctx, events, domain.DocEvent{
						Type:    domain.DocEventPhase,
						Phase:   domain.PhaseGenerating,
						Message: "Writing the document",
					}) {
						return
					}
				}
			case anthropic.ContentBlockDeltaEvent:
				if e.Delta.Type == "text_delta" && e.Delta.Text != "" {
					content.WriteString(e.Delta.Text)
					if !sendDoc(ctx, events, domain.DocEvent{Type: domain.DocEventContent, Content: e.Delta.Text}) {
						return
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			sendDoc(ctx, events, domain.DocEvent{Type: domain.DocEventError, Err: fmt.Errorf("anthropic streaming error: %w", err)})
			return
		}

		result := *req.Artifact
		result.Content = content.String()
		sendDoc(ctx, events, domain.DocEvent{Type: domain.DocEventComplete, Result: &result})
	}()

	return events, nil
}
