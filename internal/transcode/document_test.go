package transcode

import (
	"context"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/domain"
	"github.com/hakivo/chatd/internal/sse"
)

func testArtifact() *domain.Artifact {
	return &domain.Artifact{
		ID:       "art_test",
		Type:     domain.ArtifactTypeReport,
		Title:    "Policy Brief",
		Template: "policy_brief",
		Audience: "general",
	}
}

// runDocument drives the transcoder over a fixed event sequence.
func runDocument(t *testing.T, meta *domain.Artifact, events []domain.DocEvent) (string, error, *httptest.ResponseRecorder) {
	t.Helper()
	w, rec := newTestWriter(t)
	tr := NewDocument(w, zap.NewNop().Sugar())

	final, err := tr.Run(context.Background(), meta, func(ctx context.Context) (<-chan domain.DocEvent, error) {
		ch := make(chan domain.DocEvent)
		go func() {
			defer close(ch)
			for _, ev := range events {
				select {
				case ch <- ev:
				case <-ctx.Done():
					return
				}
			}
		}()
		return ch, nil
	})
	return final, err, rec
}

func TestDocumentPhaseSequence(t *testing.T) {
	meta := testArtifact()
	events := []domain.DocEvent{
		{Type: domain.DocEventPhase, Phase: domain.PhaseGathering, Message: "Collecting bills"},
		{Type: domain.DocEventPhase, Phase: domain.PhaseGenerating, Message: "Writing the document"},
		{Type: domain.DocEventContent, Content: "# Heading\n"},
		{Type: domain.DocEventContent, Content: "Body text."},
		{Type: domain.DocEventComplete, Result: &domain.Artifact{Title: "Policy Brief"}},
	}
	final, err, rec := runDocument(t, meta, events)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if final != "# Heading\nBody text." {
		t.Fatalf("unexpected final content: %q", final)
	}

	got := eventTypes(t, rec.Body.String())
	want := []string{"thinking", "thinking", "thinking", "artifact-stream", "artifact-stream", "thinking-complete", "artifact", sse.DoneSentinel}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDocumentSnapshotsAreMonotonic(t *testing.T) {
	meta := testArtifact()
	events := []domain.DocEvent{
		{Type: domain.DocEventContent, Content: "one "},
		{Type: domain.DocEventContent, Content: "two "},
		{Type: domain.DocEventContent, Content: "three"},
	}
	_, err, rec := runDocument(t, meta, events)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	var snapshots []string
	for _, payload := range frames(t, rec.Body.String()) {
		if payload == sse.DoneSentinel {
			continue
		}
		m := decodeFrame(t, payload)
		if m["type"] == "artifact-stream" || m["type"] == "artifact" {
			snapshots = append(snapshots, m["content"].(string))
		}
	}
	if len(snapshots) != 4 {
		t.Fatalf("expected 4 artifact frames, got %d", len(snapshots))
	}
	for i := 1; i < len(snapshots); i++ {
		if !strings.HasPrefix(snapshots[i], snapshots[i-1]) {
			t.Fatalf("snapshot %d is not an extension of its predecessor: %q vs %q", i, snapshots[i-1], snapshots[i])
		}
	}
	if snapshots[len(snapshots)-1] != "one two three" {
		t.Fatalf("unexpected terminal content: %q", snapshots[len(snapshots)-1])
	}
}

func TestDocumentExactlyOneTerminalArtifact(t *testing.T) {
	meta := testArtifact()
	events := []domain.DocEvent{
		{Type: domain.DocEventContent, Content: "text"},
		{Type: domain.DocEventComplete, Result: &domain.Artifact{Title: "Final Title"}},
	}
	_, err, rec := runDocument(t, meta, events)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	terminalCount := 0
	var terminal map[string]interface{}
	payloads := frames(t, rec.Body.String())
	for _, payload := range payloads {
		if payload == sse.DoneSentinel {
			continue
		}
		m := decodeFrame(t, payload)
		if m["type"] == "artifact" {
			terminalCount++
			terminal = m
		}
	}
	if terminalCount != 1 {
		t.Fatalf("expected exactly 1 terminal artifact, got %d", terminalCount)
	}
	if terminal["isComplete"] != true {
		t.Fatalf("terminal artifact not marked complete: %v", terminal)
	}
	if terminal["title"] != "Final Title" {
		t.Fatalf("expected adopted title, got %v", terminal["title"])
	}
	if payloads[len(payloads)-1] != sse.DoneSentinel {
		t.Fatalf("expected sentinel last, got %q", payloads[len(payloads)-1])
	}
}

func TestDocumentEmptyStreamStillTerminates(t *testing.T) {
	meta := testArtifact()
	final, err, rec := runDocument(t, meta, nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if final != "" {
		t.Fatalf("expected empty content, got %q", final)
	}

	got := eventTypes(t, rec.Body.String())
	want := []string{"thinking", "thinking-complete", "artifact", sse.DoneSentinel}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDocumentGeneratorError(t *testing.T) {
	meta := testArtifact()
	cause := errors.New("request timeout exceeded")
	events := []domain.DocEvent{
		{Type: domain.DocEventPhase, Phase: domain.PhaseGathering, Message: "Collecting bills"},
		{Type: domain.DocEventError, Err: cause},
	}
	_, err, rec := runDocument(t, meta, events)
	if !errors.Is(err, cause) {
		t.Fatalf("expected generator error to propagate, got %v", err)
	}

	got := eventTypes(t, rec.Body.String())
	want := []string{"thinking", "thinking", "thinking-complete", "error", sse.DoneSentinel}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, got)
	}

	payloads := frames(t, rec.Body.String())
	errFrame := decodeFrame(t, payloads[3])
	if errFrame["error"] != "The request took too long to complete. Try simplifying your question." {
		t.Fatalf("unexpected normalized message: %v", errFrame["error"])
	}
}

func TestDescribeToolFallback(t *testing.T) {
	d := describeTool("unknownTool")
	if d.Title != "Running unknownTool" {
		t.Fatalf("unexpected generic title: %q", d.Title)
	}
	if describeTool("searchBills").Title != "Searching bills" {
		t.Fatalf("expected table entry for searchBills")
	}
}
