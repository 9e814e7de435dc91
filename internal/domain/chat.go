// Package domain defines the core domain models for chatd.
package domain

import (
	"encoding/json"
	"time"
)

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is a single turn in a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the inbound request body for POST /api/chat.
// The full history is resupplied on every call; the service keeps no
// request-scoped state between calls.
type ChatRequest struct {
	Messages  []ChatMessage `json:"messages"`
	SessionID string        `json:"sessionId,omitempty"`
}

// LastMessage returns the final message of the request, or nil if empty.
func (r *ChatRequest) LastMessage() *ChatMessage {
	if len(r.Messages) == 0 {
		return nil
	}
	return &r.Messages[len(r.Messages)-1]
}

// Artifact document types.
const (
	ArtifactTypeReport = "report"
	ArtifactTypeSlides = "slides"
)

// ArtifactIntent is the classifier's verdict on a user message. It is a
// derived value, never persisted.
type ArtifactIntent struct {
	HasRequest bool   `json:"hasRequest"`
	Type       string `json:"type,omitempty"`
	Template   string `json:"template,omitempty"`
	Audience   string `json:"audience,omitempty"`
	Title      string `json:"title,omitempty"`
	Context    string `json:"context,omitempty"`
}

// Artifact is a generated document or slide deck.
type Artifact struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Template string `json:"template"`
	Audience string `json:"audience"`
	Content  string `json:"content"`
}

// Session represents a stored conversation session.
type Session struct {
	SessionID string          `json:"session_id"`
	UserID    string          `json:"user_id"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// StoredMessage is a persisted message row.
type StoredMessage struct {
	MessageID string          `json:"message_id"`
	SessionID string          `json:"session_id"`
	Role      string          `json:"role"`
	Content   string          `json:"content"`
	CreatedAt time.Time       `json:"created_at"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
}

// TraceEventType identifies a trace event.
type TraceEventType string

const (
	TraceChatStarted      TraceEventType = "chat_started"
	TraceIntentClassified TraceEventType = "intent_classified"
	TraceToolCall         TraceEventType = "tool_call"
	TraceChatDone         TraceEventType = "chat_done"
	TraceChatFailed       TraceEventType = "chat_failed"
)

// TraceEvent is a persisted per-request trace row.
type TraceEvent struct {
	EventID   string          `json:"event_id"`
	SessionID string          `json:"session_id"`
	Ts        int64           `json:"ts"` // Unix milliseconds
	Type      TraceEventType  `json:"type"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}
