// Package transcode turns backend event streams into the client-facing SSE
// protocol. The two transcoders are independent state machines: Agent for
// the conversational path, Document for the artifact path. Both guarantee a
// clean termination: exactly one terminal event, then the [DONE] sentinel,
// and never a dangling thinking indicator.
package transcode

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/apperr"
	"github.com/hakivo/chatd/internal/domain"
	"github.com/hakivo/chatd/internal/sse"
)

// FullTextFunc resolves the agent's buffered complete response text. It is
// the last-resort fallback when streaming produced no narrative content.
type FullTextFunc func(ctx context.Context) (string, error)

// OpenAgentFunc starts the conversational agent and returns its event
// stream. The channel is closed by the producer when the run ends.
type OpenAgentFunc func(ctx context.Context) (<-chan domain.AgentEvent, FullTextFunc, error)

// fallbackToolResultsText is emitted when the agent produced tool results
// but no narrative text; the rendered tool components carry the substance.
const fallbackToolResultsText = "Here are the results I found:"

// emptyResultText is the soft-failure message when the agent produced
// nothing at all.
const emptyResultText = "No response generated. Please try rephrasing your question."

// Agent transcodes the conversational agent's heterogeneous event stream.
// State is per-request and owned by the single consuming goroutine; the
// downstream write completes before the next upstream event is pulled, so
// backpressure propagates without buffering.
type Agent struct {
	w   *sse.Writer
	log *zap.SugaredLogger

	totalContent           strings.Builder
	hasActiveThinking      bool
	hasStreamedToolResults bool
	chunkCount             int
}

// NewAgent returns a transcoder writing to w.
func NewAgent(w *sse.Writer, log *zap.SugaredLogger) *Agent {
	return &Agent{w: w, log: log}
}

// Run emits start, consumes the agent stream in arrival order, and ends the
// wire stream with [DONE]. The returned transcript is what the client was
// shown as narrative content; the returned error is the upstream or
// transport failure for logging, already reported in-band where possible.
func (t *Agent) Run(ctx context.Context, open OpenAgentFunc) (string, error) {
	// Perceived-latency optimization: the client sees the stream open
	// before the first upstream event arrives.
	if err := t.w.Send(domain.NewStartEvent()); err != nil {
		return "", err
	}

	events, fullText, err := open(ctx)
	if err != nil {
		if werr := t.fail(err); werr != nil {
			return "", werr
		}
		return "", err
	}

	for {
		select {
		case <-ctx.Done():
			if werr := t.fail(ctx.Err()); werr != nil {
				return t.totalContent.String(), werr
			}
			return t.totalContent.String(), ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return t.finish(ctx, fullText)
			}
			done, err := t.handle(ev)
			if err != nil {
				// Downstream write failed: the client is gone. Stop pulling
				// upstream events so in-flight work gets cancelled.
				return t.totalContent.String(), err
			}
			if done {
				return t.totalContent.String(), ev.Err
			}
		}
	}
}

// handle processes one upstream event. done is true when the event
// terminated the wire stream (upstream error); err is a downstream write
// failure.
func (t *Agent) handle(ev domain.AgentEvent) (done bool, err error) {
	switch ev.Type {
	case domain.AgentEventTextDelta:
		// A thinking-complete must precede the first content chunk it
		// covered.
		if t.hasActiveThinking {
			if err := t.w.Send(domain.NewThinkingCompleteEvent()); err != nil {
				return false, err
			}
			t.hasActiveThinking = false
		}
		if ev.TextDelta == "" {
			return false, nil
		}
		t.chunkCount++
		t.totalContent.WriteString(ev.TextDelta)
		return false, t.w.Send(domain.NewContentEvent(ev.TextDelta))

	case domain.AgentEventToolCall:
		// Consecutive tool calls re-emit thinking without an intervening
		// thinking-complete; the client replaces the indicator.
		d := describeTool(ev.ToolName)
		if err := t.w.Send(domain.NewThinkingEvent(d.Title, d.Description, ev.ToolName)); err != nil {
			return false, err
		}
		t.hasActiveThinking = true
		return false, nil

	case domain.AgentEventToolResult:
		if !streamableToolResults[ev.ToolName] || len(ev.Result) == 0 {
			return false, nil
		}
		if err := t.w.Send(domain.NewToolResultEvent(ev.ToolName, ev.Result)); err != nil {
			return false, err
		}
		t.hasStreamedToolResults = true
		return false, nil

	case domain.AgentEventFinish:
		if t.hasActiveThinking {
			if err := t.w.Send(domain.NewThinkingCompleteEvent()); err != nil {
				return false, err
			}
			t.hasActiveThinking = false
		}
		return false, nil

	case domain.AgentEventError:
		return true, t.fail(ev.Err)

	default:
		// Unrecognized upstream tags are deliberate no-ops so protocol
		// additions don't break the stream.
		t.log.Debugw("ignoring unrecognized agent event", "type", ev.Type)
		return false, nil
	}
}

// finish resolves the final content after upstream exhaustion and writes the
// sentinel. An empty stream never closes bare: a fallback content or error
// event always precedes [DONE].
func (t *Agent) finish(ctx context.Context, fullText FullTextFunc) (string, error) {
	// A producer that closed without a finish event must not leave the
	// indicator spinning.
	if t.hasActiveThinking {
		if err := t.w.Send(domain.NewThinkingCompleteEvent()); err != nil {
			return t.totalContent.String(), err
		}
		t.hasActiveThinking = false
	}

	if t.totalContent.Len() == 0 {
		switch {
		case t.hasStreamedToolResults:
			if err := t.w.Send(domain.NewContentEvent(fallbackToolResultsText)); err != nil {
				return "", err
			}
			t.totalContent.WriteString(fallbackToolResultsText)

		default:
			text := t.awaitFullText(ctx, fullText)
			if text == "" {
				if err := t.w.Send(domain.NewErrorEvent(emptyResultText)); err != nil {
					return "", err
				}
				return "", t.w.Done()
			}
			if err := t.w.Send(domain.NewContentEvent(text)); err != nil {
				return "", err
			}
			t.totalContent.WriteString(text)
		}
	}

	return t.totalContent.String(), t.w.Done()
}

// awaitFullText resolves the agent's buffered full response, tolerating a
// missing fallback or a resolution failure.
func (t *Agent) awaitFullText(ctx context.Context, fullText FullTextFunc) string {
	if fullText == nil {
		return ""
	}
	text, err := fullText(ctx)
	if err != nil {
		t.log.Warnw("full-text fallback failed", "error", err)
		return ""
	}
	return text
}

// fail reports cause in-band and terminates the wire stream. Clearing a
// dangling indicator comes first so the client UI never spins forever. The
// return value is the downstream write failure, if any; the cause itself is
// the caller's to propagate.
func (t *Agent) fail(cause error) error {
	if t.hasActiveThinking {
		if err := t.w.Send(domain.NewThinkingCompleteEvent()); err != nil {
			return err
		}
		t.hasActiveThinking = false
	}
	if err := t.w.Send(domain.NewErrorEvent(apperr.Normalize(cause))); err != nil {
		return err
	}
	return t.w.Done()
}
