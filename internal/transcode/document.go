package transcode

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/apperr"
	"github.com/hakivo/chatd/internal/domain"
	"github.com/hakivo/chatd/internal/sse"
)

// OpenDocumentFunc starts the document generator and returns its event
// stream. The channel is closed by the producer when generation ends.
type OpenDocumentFunc func(ctx context.Context) (<-chan domain.DocEvent, error)

// phaseTitles maps generator phases to indicator titles. Phases outside the
// table get the generating title.
var phaseTitles = map[string]string{
	domain.PhaseGathering: "Gathering research data",
}

const generatingTitle = "Generating your document"

// Document transcodes the generator's linear phase stream. Content arrives
// append-only; every artifact-stream frame carries the full accumulated
// snapshot so a client can join mid-stream. Exactly one terminal event
// (artifact or error) precedes [DONE].
type Document struct {
	w   *sse.Writer
	log *zap.SugaredLogger

	accumulated strings.Builder
	result      *domain.Artifact
}

// NewDocument returns a transcoder writing to w.
func NewDocument(w *sse.Writer, log *zap.SugaredLogger) *Document {
	return &Document{w: w, log: log}
}

// Run drives the document stream for the artifact described by meta. It
// returns the final document content for persistence and the upstream or
// transport failure for logging, already reported in-band where possible.
func (t *Document) Run(ctx context.Context, meta *domain.Artifact, open OpenDocumentFunc) (string, error) {
	if err := t.w.Send(domain.NewThinkingEvent("Analyzing your request", "Deciding what research this document needs", "")); err != nil {
		return "", err
	}

	events, err := open(ctx)
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
				return t.accumulated.String(), werr
			}
			return t.accumulated.String(), ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return t.finish(meta)
			}
			done, err := t.handle(meta, ev)
			if err != nil {
				// Client disconnected; stop pulling so generation aborts.
				return t.accumulated.String(), err
			}
			if done {
				return t.accumulated.String(), ev.Err
			}
		}
	}
}

// handle processes one generator event in arrival order.
func (t *Document) handle(meta *domain.Artifact, ev domain.DocEvent) (done bool, err error) {
	switch ev.Type {
	case domain.DocEventPhase:
		title, ok := phaseTitles[ev.Phase]
		if !ok {
			title = generatingTitle
		}
		return false, t.w.Send(domain.NewThinkingEvent(title, ev.Message, ""))

	case domain.DocEventContent:
		// Append-only: never reordered, never truncated.
		t.accumulated.WriteString(ev.Content)
		return false, t.w.Send(domain.NewArtifactEvent(meta, t.accumulated.String(), false))

	case domain.DocEventComplete:
		// Remembered for the terminal frame; the generator is finite, so
		// the loop ends when the channel closes, not here.
		t.result = ev.Result
		return false, nil

	case domain.DocEventError:
		return true, t.fail(ev.Err)

	default:
		t.log.Debugw("ignoring unrecognized document event", "type", ev.Type)
		return false, nil
	}
}

// finish emits the terminal artifact frame and the sentinel.
func (t *Document) finish(meta *domain.Artifact) (string, error) {
	if err := t.w.Send(domain.NewThinkingCompleteEvent()); err != nil {
		return t.accumulated.String(), err
	}

	if t.result != nil && t.result.Title != "" {
		meta.Title = t.result.Title
	}
	if err := t.w.Send(domain.NewArtifactEvent(meta, t.accumulated.String(), true)); err != nil {
		return t.accumulated.String(), err
	}
	return t.accumulated.String(), t.w.Done()
}

// fail clears the indicator, reports cause in-band, and terminates the wire
// stream. Returns the downstream write failure, if any.
func (t *Document) fail(cause error) error {
	if err := t.w.Send(domain.NewThinkingCompleteEvent()); err != nil {
		return err
	}
	if err := t.w.Send(domain.NewErrorEvent(apperr.Normalize(cause))); err != nil {
		return err
	}
	return t.w.Done()
}
