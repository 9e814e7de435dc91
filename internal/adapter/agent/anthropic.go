package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/apperr"
	"github.com/hakivo/chatd/internal/domain"
	"github.com/hakivo/chatd/internal/tools"
)

// maxAgentTurns bounds the tool-use loop so a misbehaving model cannot spin
// forever.
const maxAgentTurns = 8

const agentSystemPrompt = "You are Hakivo, a nonpartisan assistant for following Congress. " +
	"Answer questions about bills, members, and legislative activity using the provided tools, " +
	"and cite bills by number. When a tool returns structured results the client renders them, " +
	"so summarize briefly rather than repeating every row. If you cannot find an answer in the " +
	"data, say so plainly."

// AnthropicClient runs the conversational agent on the Anthropic Messages
// API, executing registry tools between model turns.
type AnthropicClient struct {
	client   *anthropic.Client
	model    string
	registry *tools.Registry
	log      *zap.SugaredLogger
}

// NewAnthropicClient creates the real agent client.
func NewAnthropicClient(apiKey, model string, registry *tools.Registry, log *zap.SugaredLogger) (*AnthropicClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set: %w", apperr.ErrConfiguration)
	}
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicClient{
		client:   &client,
		model:    model,
		registry: registry,
		log:      log,
	}, nil
}

// Name identifies the backing implementation.
func (c *AnthropicClient) Name() string { return "anthropic" }

// StreamChat begins a run and returns its event stream.
func (c *AnthropicClient) StreamChat(ctx context.Context, prompt string) (*Stream, error) {
	events := make(chan domain.AgentEvent)
	s := newStream(events)
	go c.run(ctx, prompt, events, s)
	return s, nil
}

// run drives the model/tool loop, producing upstream events in order.
func (c *AnthropicClient) run(ctx context.Context, prompt string, out chan<- domain.AgentEvent, s *Stream) {
	var full strings.Builder
	var runErr error
	defer func() {
		s.finish(full.String(), runErr)
		close(out)
	}()

	toolParams := buildToolParams(c.registry)
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}

	for turn := 0; turn < maxAgentTurns; turn++ {
		params := anthropic.MessageNewParams{
			Model:     anthropic.Model(c.model),
			MaxTokens: 4096,
			Messages:  messages,
			System: []anthropic.TextBlockParam{
				{Type: "text", Text: agentSystemPrompt},
			},
			Tools: toolParams,
		}

		stream := c.client.Messages.NewStreaming(ctx, params)
		message := anthropic.Message{}

		for stream.Next() {
			event := stream.Current()
			if err := message.Accumulate(event); err != nil {
				runErr = fmt.Errorf("failed to accumulate message: %w", err)
				send(ctx, out, domain.AgentEvent{Type: domain.AgentEventError, Err: runErr})
				return
			}

			switch e := event.AsAny().(type) {
			case anthropic.ContentBlockStartEvent:
				if e.ContentBlock.Type == "tool_use" {
					ev := domain.AgentEvent{Type: domain.AgentEventToolCall, ToolName: e.ContentBlock.Name}
					if !send(ctx, out, ev) {
						runErr = ctx.Err()
						return
					}
				}
			case anthropic.ContentBlockDeltaEvent:
				if e.Delta.Type == "text_delta" && e.Delta.Text != "" {
					full.WriteString(e.Delta.Text)
					ev := domain.AgentEvent{Type: domain.AgentEventTextDelta, TextDelta: e.Delta.Text}
					if !send(ctx, out, ev) {
						runErr = ctx.Err()
						return
					}
				}
			}
		}
		if err := stream.Err(); err != nil {
			runErr = fmt.Errorf("anthropic streaming error: %w", err)
			send(ctx, out, domain.AgentEvent{Type: domain.AgentEventError, Err: runErr})
			return
		}

		messages = append(messages, assistantParam(&message))

		if message.StopReason != "tool_use" {
			send(ctx, out, domain.AgentEvent{
				Type:         domain.AgentEventFinish,
				FinishReason: string(message.StopReason),
			})
			return
		}

		resultBlocks, ok := c.executeTools(ctx, &message, out)
		if !ok {
			runErr = ctx.Err()
			return
		}
		messages = append(messages, anthropic.NewUserMessage(resultBlocks...))
	}

	send(ctx, out, domain.AgentEvent{Type: domain.AgentEventFinish, FinishReason: "max_turns"})
}

// executeTools runs every tool_use block of the turn and emits tool-result
// events. Execution errors are reported back to the model, not to the
// client. Returns ok=false when the context was cancelled mid-execution.
func (c *AnthropicClient) executeTools(ctx context.Context, message *anthropic.Message, out chan<- domain.AgentEvent) ([]anthropic.ContentBlockParamUnion, bool) {
	var blocks []anthropic.ContentBlockParamUnion

	for _, block := range message.Content {
		if block.Type != "tool_use" {
			continue
		}
		if ctx.Err() != nil {
			return nil, false
		}

		result, err := c.registry.Execute(ctx, block.Name, block.Input)
		if err != nil {
			c.log.Warnw("tool execution failed", "tool", block.Name, "error", err)
			blocks = append(blocks, anthropic.NewToolResultBlock(block.ID, fmt.Sprintf("tool error: %v", err), true))
			continue
		}

		ev := domain.AgentEvent{Type: domain.AgentEventToolResult, ToolName: block.Name, Result: result}
		if !send(ctx, out, ev) {
			return nil, false
		}
		blocks = append(blocks, anthropic.NewToolResultBlock(block.ID, string(result), false))
	}
	return blocks, true
}

// assistantParam rebuilds the assistant turn from an accumulated message so
// it can be replayed on the next turn.
func assistantParam(message *anthropic.Message) anthropic.MessageParam {
	var blocks []anthropic.ContentBlockParamUnion
	for _, block := range message.Content {
		switch block.Type {
		case "text":
			blocks = append(blocks, anthropic.NewTextBlock(block.Text))
		case "tool_use":
			blocks = append(blocks, anthropic.NewToolUseBlock(block.ID, block.Input, block.Name))
		}
	}
	return anthropic.NewAssistantMessage(blocks...)
}

// buildToolParams converts registry definitions to Anthropic tool params.
func buildToolParams(registry *tools.Registry) []anthropic.ToolUnionParam {
	defs := registry.Definitions()
	params := make([]anthropic.ToolUnionParam, 0, len(defs))
	for _, def := range defs {
		schema := anthropic.ToolInputSchemaParam{
			Properties: def.InputSchema["properties"],
		}
		if required, ok := def.InputSchema["required"].([]any); ok {
			for _, v := range required {
				if name, ok := v.(string); ok {
					schema.Required = append(schema.Required, name)
				}
			}
		}
		tool := anthropic.ToolUnionParamOfTool(schema, def.Name)
		if def.Description != "" {
			tool.OfTool.Description = anthropic.String(def.Description)
		}
		params = append(params, tool)
	}
	return params
}

// send delivers one event, giving up when ctx is cancelled. The unbuffered
// channel makes this the producer's backpressure point: the next upstream
// event is not produced until the consumer's downstream write settled.
func send(ctx context.Context, out chan<- domain.AgentEvent, ev domain.AgentEvent) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
