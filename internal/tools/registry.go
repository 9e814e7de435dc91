// Package tools provides the agent's server-side tool registry and the
// built-in congress-data tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// ExecutorFunc runs a tool invocation.
type ExecutorFunc func(ctx context.Context, args json.RawMessage) (json.RawMessage, error)

// Definition describes one tool: its model-facing schema plus its executor.
type Definition struct {
	Name        string
	Description string
	// InputSchema is the JSON schema for the tool's arguments, in the
	// {"type":"object","properties":{...},"required":[...]} form.
	InputSchema map[string]any
	Execute     ExecutorFunc
}

// Registry stores tool definitions keyed by tool name.
type Registry struct {
	mu    sync.RWMutex
	defs  map[string]*Definition
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*Definition)}
}

// Register adds a tool definition.
func (r *Registry) Register(def *Definition) error {
	if def == nil || def.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	if def.Execute == nil {
		return fmt.Errorf("executor is required for %s", def.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.defs[def.Name]; exists {
		return fmt.Errorf("tool already registered: %s", def.Name)
	}
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
	return nil
}

// MustRegister adds a tool definition or panics.
func (r *Registry) MustRegister(def *Definition) {
	if err := r.Register(def); err != nil {
		panic(err)
	}
}

// Execute runs the named tool.
func (r *Registry) Execute(ctx context.Context, toolName string, args json.RawMessage) (json.RawMessage, error) {
	r.mu.RLock()
	def := r.defs[toolName]
	r.mu.RUnlock()
	if def == nil {
		return nil, fmt.Errorf("no tool registered for %s", toolName)
	}
	return def.Execute(ctx, args)
}

// Definitions returns all registered tools in registration order.
func (r *Registry) Definitions() []*Definition {
	r.mu.RLock()
	defer r.mu.RUnlock()
	defs := make([]*Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.defs[name])
	}
	return defs
}
