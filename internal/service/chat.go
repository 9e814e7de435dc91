package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hakivo/chatd/internal/adapter/docgen"
	"github.com/hakivo/chatd/internal/domain"
	"github.com/hakivo/chatd/internal/intent"
	"github.com/hakivo/chatd/internal/prompt"
	"github.com/hakivo/chatd/internal/sse"
	"github.com/hakivo/chatd/internal/transcode"
)

// Authorize evaluates the chat policy for a request. A "deny" decision comes
// back as (false, reason); policy evaluation errors fail open.
func (s *Service) Authorize(ctx context.Context, req *domain.ChatRequest) (bool, string) {
	if s.policyEngine == nil {
		return true, ""
	}

	last := req.LastMessage()
	message := ""
	if last != nil {
		message = last.Content
	}

	decision, reason, err := s.policyEngine.Evaluate(ctx, map[string]interface{}{
		"session_id":    req.SessionID,
		"message":       message,
		"message_count": len(req.Messages),
	})
	if err != nil {
		s.log.Errorw("policy evaluation failed", "error", err)
		return true, ""
	}
	if decision == "deny" {
		return false, reason
	}
	return true, ""
}

// Chat runs one chat request end to end: classify the last message, route to
// the document generator or the conversational agent, and transcode the
// chosen backend's stream onto w. Persistence and trace recording never
// block the stream; their failures are logged and skipped.
func (s *Service) Chat(ctx context.Context, w *sse.Writer, req *domain.ChatRequest) error {
	last := req.LastMessage()
	if last == nil {
		return fmt.Errorf("empty messages")
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = "sess_" + uuid.New().String()[:8]
	}
	if _, err := s.store.GetOrCreateSession(ctx, sessionID, "default_user"); err != nil {
		s.log.Errorw("failed to get/create session", "session_id", sessionID, "error", err)
	}

	s.recordEvent(ctx, sessionID, domain.TraceChatStarted, map[string]interface{}{
		"message_count": len(req.Messages),
	})
	s.saveMessage(ctx, sessionID, domain.RoleUser, last.Content)

	verdict := intent.Classify(last.Content)
	s.recordEvent(ctx, sessionID, domain.TraceIntentClassified, verdict)

	var (
		final string
		err   error
	)
	if verdict.HasRequest {
		final, err = s.runDocument(ctx, w, verdict, last.Content)
	} else {
		final, err = s.runAgent(ctx, w, sessionID, req.Messages)
	}

	if final != "" {
		s.saveMessage(ctx, sessionID, domain.RoleAssistant, final)
	}
	if err != nil {
		s.recordEvent(ctx, sessionID, domain.TraceChatFailed, map[string]interface{}{
			"error": err.Error(),
		})
		return err
	}
	s.recordEvent(ctx, sessionID, domain.TraceChatDone, map[string]interface{}{
		"content_length": len(final),
	})
	return nil
}

// runAgent streams the conversational agent through the agent transcoder.
func (s *Service) runAgent(ctx context.Context, w *sse.Writer, sessionID string, messages []domain.ChatMessage) (string, error) {
	p := prompt.ConversationalPrompt(messages)
	tr := transcode.NewAgent(w, s.log)
	return tr.Run(ctx, func(ctx context.Context) (<-chan domain.AgentEvent, transcode.FullTextFunc, error) {
		stream, err := s.agent.StreamChat(ctx, p)
		if err != nil {
			return nil, nil, err
		}
		return s.traceToolCalls(ctx, sessionID, stream.Events), stream.FullText, nil
	})
}

// traceToolCalls forwards the agent stream unchanged, recording a trace
// event for each tool call as it passes through.
func (s *Service) traceToolCalls(ctx context.Context, sessionID string, in <-chan domain.AgentEvent) <-chan domain.AgentEvent {
	out := make(chan domain.AgentEvent)
	go func() {
		defer close(out)
		for ev := range in {
			if ev.Type == domain.AgentEventToolCall {
				s.recordEvent(ctx, sessionID, domain.TraceToolCall, map[string]interface{}{
					"tool": ev.ToolName,
				})
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// runDocument streams the document generator through the document
// transcoder.
func (s *Service) runDocument(ctx context.Context, w *sse.Writer, verdict domain.ArtifactIntent, message string) (string, error) {
	meta := &domain.Artifact{
		ID:       "art_" + uuid.New().String()[:8],
		Type:     verdict.Type,
		Title:    artifactTitle(verdict),
		Template: verdict.Template,
		Audience: verdict.Audience,
	}

	docReq := s.documentRequest(meta, verdict, message)
	tr := transcode.NewDocument(w, s.log)
	return tr.Run(ctx, meta, func(ctx context.Context) (<-chan domain.DocEvent, error) {
		return s.docgen.Generate(ctx, docReq)
	})
}

func (s *Service) documentRequest(meta *domain.Artifact, verdict domain.ArtifactIntent, message string) docgen.Request {
	topic := verdict.Title
	if topic == "" {
		topic = verdict.Context
	}
	if topic == "" {
		topic = message
	}
	return docgen.Request{
		Artifact:     meta,
		SystemPrompt: prompt.SystemPrompt(verdict.Template, verdict.Audience),
		UserPrompt:   prompt.ArtifactUserPrompt(verdict.Type, topic),
	}
}

// artifactTitle picks the artifact's working title: the explicit title if
// the request named one, else a readable form of the template.
func artifactTitle(verdict domain.ArtifactIntent) string {
	if verdict.Title != "" {
		return verdict.Title
	}
	words := strings.Split(verdict.Template, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// saveMessage persists one conversation turn, logging failures.
func (s *Service) saveMessage(ctx context.Context, sessionID, role, content string) {
	msg := &domain.StoredMessage{
		MessageID: "msg_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		s.log.Errorw("failed to save message", "session_id", sessionID, "role", role, "error", err)
	}
}

// Messages returns the stored conversation for a session.
func (s *Service) Messages(ctx context.Context, sessionID string, limit int) ([]domain.StoredMessage, error) {
	messages, err := s.store.GetMessages(ctx, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get messages: %w", err)
	}
	return messages, nil
}
