package agent

import (
	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/config"
	"github.com/hakivo/chatd/internal/tools"
)

// NewClient creates an agent client for the configured mode. Mock mode, or
// a missing API key, falls back to the keyless mock so the service stays
// runnable in development.
func NewClient(cfg *config.Config, registry *tools.Registry, log *zap.SugaredLogger) (Client, error) {
	if cfg.Mode == config.ModeMock {
		log.Infow("using mock agent client", "reason", "CHATD_MODE=MOCK")
		return NewMockClient(), nil
	}
	if cfg.AnthropicAPIKey == "" {
		log.Infow("using mock agent client", "reason", "no API key configured")
		return NewMockClient(), nil
	}
	return NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AgentModel, registry, log)
}
