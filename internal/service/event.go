package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/hakivo/chatd/internal/domain"
)

// recordEvent persists a trace event, logging failures.
func (s *Service) recordEvent(ctx context.Context, sessionID string, eventType domain.TraceEventType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.log.Errorw("failed to marshal event payload", "type", eventType, "error", err)
		data = nil
	}

	event := &domain.TraceEvent{
		EventID:   "evt_" + uuid.New().String()[:8],
		SessionID: sessionID,
		Ts:        time.Now().UnixMilli(),
		Type:      eventType,
		Payload:   data,
	}
	if err := s.store.CreateEvent(ctx, event); err != nil {
		s.log.Errorw("failed to record event", "session_id", sessionID, "type", eventType, "error", err)
	}
}

// Events returns the stored trace events for a session.
func (s *Service) Events(ctx context.Context, sessionID string, afterTs int64, limit int) ([]domain.TraceEvent, error) {
	return s.store.GetEvents(ctx, sessionID, afterTs, limit)
}
