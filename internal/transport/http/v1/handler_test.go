package v1

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/adapter/agent"
	"github.com/hakivo/chatd/internal/adapter/docgen"
	"github.com/hakivo/chatd/internal/config"
	"github.com/hakivo/chatd/internal/repository"
	"github.com/hakivo/chatd/internal/service"
	"github.com/hakivo/chatd/policy"
)

// newTestHandler builds a handler on an in-memory store with the mock
// backends.
func newTestHandler(t *testing.T) (*Handler, *repository.SQLiteStore) {
	t.Helper()

	db, err := repository.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	engine, err := policy.NewEngine(context.Background(), policy.DefaultPolicy)
	if err != nil {
		t.Fatalf("failed to create policy engine: %v", err)
	}

	cfg := &config.Config{Mode: config.ModeMock}
	log := zap.NewNop().Sugar()
	svc := service.New(db, agent.NewMockClient(), docgen.NewMockGenerator(), engine, cfg, log)
	return NewHandler(svc, cfg), db
}
