// Package service implements the chat orchestration logic.
package service

import (
	"go.uber.org/zap"

	"github.com/hakivo/chatd/internal/adapter/agent"
	"github.com/hakivo/chatd/internal/adapter/docgen"
	"github.com/hakivo/chatd/internal/config"
	"github.com/hakivo/chatd/internal/repository"
	"github.com/hakivo/chatd/policy"
)

type Service struct {
	store        repository.Store
	agent        agent.Client
	docgen       docgen.Generator
	policyEngine *policy.Engine
	config       *config.Config
	log          *zap.SugaredLogger
}

func New(store repository.Store, agentClient agent.Client, generator docgen.Generator, policyEngine *policy.Engine, cfg *config.Config, log *zap.SugaredLogger) *Service {
	return &Service{
		store:        store,
		agent:        agentClient,
		docgen:       generator,
		policyEngine: policyEngine,
		config:       cfg,
		log:          log,
	}
}
