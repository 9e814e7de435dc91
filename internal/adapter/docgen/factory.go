package docgen

import (
	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/config"
)

// NewGenerator creates a document generator for the configured mode. Mock
// mode, or a missing API key, falls back to the keyless mock.
func NewGenerator(cfg *config.Config, log *zap.SugaredLogger) (Generator, error) {
	if cfg.Mode == config.ModeMock {
		log.Infow("using mock document generator", "reason", "CHATD_MODE=MOCK")
		return NewMockGenerator(), nil
	}
	if cfg.AnthropicAPIKey == "" {
		log.Infow("using mock document generator", "reason", "no API key configured")
		return NewMockGenerator(), nil
	}
	return NewAnthropicGenerator(cfg.AnthropicAPIKey, cfg.DocModel, log)
}
