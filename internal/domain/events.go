package domain

import "encoding/json"

// Upstream event tags emitted by the conversational agent.
const (
	AgentEventTextDelta  = "text-delta"
	AgentEventToolCall   = "tool-call"
	AgentEventToolResult = "tool-result"
	AgentEventFinish     = "finish"
	AgentEventError      = "error"
)

// AgentEvent is one event from the conversational agent's stream. Exactly
// one tag per event; fields other than the tagged ones are zero. Consumers
// must treat unrecognized tags as no-ops so upstream protocol additions
// don't break the transcoder.
type AgentEvent struct {
	Type         string          `json:"type"`
	TextDelta    string          `json:"textDelta,omitempty"`
	ToolName     string          `json:"toolName,omitempty"`
	Result       json.RawMessage `json:"result,omitempty"`
	FinishReason string          `json:"finishReason,omitempty"`

	// Err carries an adapter failure in-band. Never serialized.
	Err error `json:"-"`
}

// Upstream event tags emitted by the document generator.
const (
	DocEventPhase    = "phase"
	DocEventContent  = "content"
	DocEventComplete = "complete"
	DocEventError    = "error"
)

// Document generation phases.
const (
	PhaseAnalyzing  = "analyzing"
	PhaseGathering  = "gathering"
	PhaseGenerating = "generating"
)

// DocEvent is one event from the document generator's stream.
type DocEvent struct {
	Type    string    `json:"type"`
	Phase   string    `json:"phase,omitempty"`
	Message string    `json:"message,omitempty"`
	Content string    `json:"content,omitempty"`
	Result  *Artifact `json:"result,omitempty"`

	// Err carries a generator failure in-band. Never serialized.
	Err error `json:"-"`
}
