package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hakivo/chatd/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStoreSessionAndMessages(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session := &domain.Session{
		SessionID: "s1",
		UserID:    "u1",
		CreatedAt: time.Now(),
		Metadata:  json.RawMessage(`{"tier":"pro"}`),
	}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	gotSession, err := store.GetSession(ctx, "s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if gotSession == nil || gotSession.UserID != "u1" {
		t.Fatalf("unexpected session: %+v", gotSession)
	}

	msg := &domain.StoredMessage{
		MessageID: "m1",
		SessionID: "s1",
		Role:      domain.RoleUser,
		Content:   "hello",
		CreatedAt: time.Now(),
	}
	if err := store.CreateMessage(ctx, msg); err != nil {
		t.Fatalf("CreateMessage failed: %v", err)
	}

	messages, err := store.GetMessages(ctx, "s1", 10)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(messages))
	}
	if messages[0].Content != "hello" || messages[0].Role != domain.RoleUser {
		t.Fatalf("unexpected message: %+v", messages[0])
	}
}

func TestSQLiteStoreGetOrCreateSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.GetOrCreateSession(ctx, "s1", "u1")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	if first == nil || first.SessionID != "s1" {
		t.Fatalf("unexpected session: %+v", first)
	}

	second, err := store.GetOrCreateSession(ctx, "s1", "other")
	if err != nil {
		t.Fatalf("GetOrCreateSession failed: %v", err)
	}
	if second.UserID != "u1" {
		t.Fatalf("expected existing session to be returned, got %+v", second)
	}
}

func TestSQLiteStoreEvents(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	session := &domain.Session{SessionID: "s1", UserID: "u1", CreatedAt: time.Now()}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	events := []*domain.TraceEvent{
		{EventID: "e1", SessionID: "s1", Ts: 100, Type: domain.TraceChatStarted, Payload: json.RawMessage(`{"messages":1}`)},
		{EventID: "e2", SessionID: "s1", Ts: 200, Type: domain.TraceIntentClassified},
		{EventID: "e3", SessionID: "s1", Ts: 300, Type: domain.TraceChatDone},
	}
	for _, ev := range events {
		if err := store.CreateEvent(ctx, ev); err != nil {
			t.Fatalf("CreateEvent failed: %v", err)
		}
	}

	got, err := store.GetEvents(ctx, "s1", 0, 10)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].Type != domain.TraceChatStarted || got[2].Type != domain.TraceChatDone {
		t.Fatalf("events out of order: %+v", got)
	}

	after, err := store.GetEvents(ctx, "s1", 150, 10)
	if err != nil {
		t.Fatalf("GetEvents failed: %v", err)
	}
	if len(after) != 2 {
		t.Fatalf("expected 2 events after ts 150, got %d", len(after))
	}
}
