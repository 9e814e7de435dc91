package domain

import "encoding/json"

// Downstream wire event tags. Each variant below marshals to one SSE frame;
// the [DONE] sentinel is written by the SSE writer, not modeled here.
const (
	WireStart            = "start"
	WireThinking         = "thinking"
	WireThinkingComplete = "thinking-complete"
	WireContent          = "content"
	WireToolResult       = "tool-result"
	WireArtifactStream   = "artifact-stream"
	WireArtifact         = "artifact"
	WireError            = "error"
)

// StartEvent signals that the server accepted the request and a stream
// follows.
type StartEvent struct {
	Type string `json:"type"`
}

// ThinkingEvent is a synthesized progress indicator. The client replaces any
// visible indicator with the newest one; consecutive thinking events need no
// intervening thinking-complete.
type ThinkingEvent struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ToolName    string `json:"toolName,omitempty"`
}

// ThinkingCompleteEvent clears the progress indicator.
type ThinkingCompleteEvent struct {
	Type string `json:"type"`
}

// ContentEvent carries one narrative text fragment.
type ContentEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ToolResultEvent carries an allow-listed tool result for client-side
// rendering.
type ToolResultEvent struct {
	Type     string          `json:"type"`
	ToolName string          `json:"toolName"`
	Result   json.RawMessage `json:"result"`
}

// ArtifactEvent carries document content. While streaming, Content is the
// full accumulated snapshot (not a delta) and IsComplete is false; the final
// frame repeats the whole artifact with IsComplete true.
type ArtifactEvent struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Artifact   string `json:"artifactType"`
	Title      string `json:"title"`
	Template   string `json:"template"`
	Audience   string `json:"audience"`
	Content    string `json:"content"`
	IsComplete bool   `json:"isComplete"`
}

// ErrorEvent carries a normalized, user-safe failure message.
type ErrorEvent struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

// NewStartEvent returns the stream-opening event.
func NewStartEvent() StartEvent {
	return StartEvent{Type: WireStart}
}

// NewThinkingEvent returns a progress indicator event.
func NewThinkingEvent(title, description, toolName string) ThinkingEvent {
	return ThinkingEvent{Type: WireThinking, Title: title, Description: description, ToolName: toolName}
}

// NewThinkingCompleteEvent returns the indicator-clearing event.
func NewThinkingCompleteEvent() ThinkingCompleteEvent {
	return ThinkingCompleteEvent{Type: WireThinkingComplete}
}

// NewContentEvent returns a narrative content event.
func NewContentEvent(content string) ContentEvent {
	return ContentEvent{Type: WireContent, Content: content}
}

// NewToolResultEvent returns a renderable tool result event.
func NewToolResultEvent(toolName string, result json.RawMessage) ToolResultEvent {
	return ToolResultEvent{Type: WireToolResult, ToolName: toolName, Result: result}
}

// NewArtifactEvent returns an artifact frame. Streaming frames use
// isComplete=false; the single terminal frame uses isComplete=true.
func NewArtifactEvent(a *Artifact, content string, complete bool) ArtifactEvent {
	typ := WireArtifactStream
	if complete {
		typ = WireArtifact
	}
	return ArtifactEvent{
		Type:       typ,
		ID:         a.ID,
		Artifact:   a.Type,
		Title:      a.Title,
		Template:   a.Template,
		Audience:   a.Audience,
		Content:    content,
		IsComplete: complete,
	}
}

// NewErrorEvent returns an in-band error event.
func NewErrorEvent(message string) ErrorEvent {
	return ErrorEvent{Type: WireError, Error: message}
}
