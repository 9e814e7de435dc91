// Package sse frames downstream events as Server-Sent Events wire bytes.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// DoneSentinel is the literal terminal frame payload. It is not JSON;
// clients detect termination by string comparison.
const DoneSentinel = "[DONE]"

// Writer writes one SSE frame per logical event and flushes after every
// write so the transport can deliver each frame independently.
type Writer struct {
	w http.ResponseWriter
	f http.Flusher
}

// NewWriter wraps w for SSE output, sets the streaming response headers, and
// commits the 200 status. After this point failures can only be reported
// in-band. Returns an error if the underlying writer cannot flush.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	f, ok := w.(http.Flusher)
	if !ok {
		return nil, fmt.Errorf("response writer does not support streaming")
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	f.Flush()

	return &Writer{w: w, f: f}, nil
}

// Send marshals v and writes it as a single `data: <json>\n\n` frame.
// Two events never share a frame.
func (s *Writer) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return err
	}
	s.f.Flush()
	return nil
}

// Done writes the terminal sentinel frame.
func (s *Writer) Done() error {
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", DoneSentinel); err != nil {
		return err
	}
	s.f.Flush()
	return nil
}
