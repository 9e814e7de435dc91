package sse

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriterHeadersAndFraming(t *testing.T) {
	rec := httptest.NewRecorder()
	w, err := NewWriter(rec)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("unexpected content type: %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-cache" {
		t.Fatalf("unexpected cache control: %q", got)
	}
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if err := w.Send(map[string]string{"type": "start"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := w.Send(map[string]string{"type": "content", "content": "hi"}); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if err := w.Done(); err != nil {
		t.Fatalf("Done failed: %v", err)
	}

	body := rec.Body.String()
	chunks := strings.Split(strings.TrimSuffix(body, "\n\n"), "\n\n")
	if len(chunks) != 3 {
		t.Fatalf("expected 3 frames, got %d: %q", len(chunks), body)
	}
	for _, chunk := range chunks {
		if !strings.HasPrefix(chunk, "data: ") {
			t.Fatalf("frame missing data prefix: %q", chunk)
		}
	}
	if chunks[2] != "data: [DONE]" {
		t.Fatalf("unexpected sentinel frame: %q", chunks[2])
	}
}

func TestWriterRejectsNonFlusher(t *testing.T) {
	if _, err := NewWriter(nonFlusher{}); err == nil {
		t.Fatal("expected error for non-flushing writer")
	}
}

type nonFlusher struct{}

func (nonFlusher) Header() http.Header        { return http.Header{} }
func (nonFlusher) Write(b []byte) (int, error) { return len(b), nil }
func (nonFlusher) WriteHeader(statusCode int) {}
