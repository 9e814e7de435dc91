// Package repository defines the storage interface and implementations.
package repository

import (
	"context"

	"github.com/hakivo/chatd/internal/domain"
)

// Store defines the interface for data persistence.
type Store interface {
	// Session operations
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, sessionID string) (*domain.Session, error)
	GetOrCreateSession(ctx context.Context, sessionID, userID string) (*domain.Session, error)

	// Message operations
	CreateMessage(ctx context.Context, message *domain.StoredMessage) error
	GetMessages(ctx context.Context, sessionID string, limit int) ([]domain.StoredMessage, error)

	// Trace event operations
	CreateEvent(ctx context.Context, event *domain.TraceEvent) error
	GetEvents(ctx context.Context, sessionID string, afterTs int64, limit int) ([]domain.TraceEvent, error)

	// Lifecycle
	Close() error
}
