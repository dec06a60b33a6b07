package main

import (
	"fmt"
	"log"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/agent"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/bus"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/config"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/coordinator"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/knowledge"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/orchestrator"
)

// system bundles the wired-up components behind one request loop.
type system struct {
	cfg    *config.Config
	client *agent.Client
	loop   *orchestrator.Loop
}

// buildSystem wires the bus, coordinator, knowledge store, specialist team,
// and orchestration loop from configuration.
func buildSystem(cfg *config.Config) (*system, error) {
	client, err := agent.NewClient(agent.ClientConfig{
		Model:  anthropic.Model(cfg.Anthropic.Model),
		APIKey: cfg.Anthropic.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create API client: %w", err)
	}

	registry := coordinator.DefaultTemplates()
	if cfg.Templates.Path != "" {
		registry, err = coordinator.LoadTemplates(cfg.Templates.Path)
		if err != nil {
			return nil, fmt.Errorf("load templates: %w", err)
		}
		log.Printf("[agentteam] loaded templates from %s", cfg.Templates.Path)
	}

	b := bus.New()
	b.Register("coordinator")
	b.Register("orchestrator")
	for _, role := range agent.Roles() {
		b.Register(string(role))
	}

	loop := orchestrator.New(
		coordinator.New(registry, b),
		b,
		knowledge.NewStore(),
		agent.Team(client),
		client,
		orchestrator.Options{
			MaxRetries:         cfg.Orchestrator.MaxRetries,
			SpecialistTimeout:  cfg.Orchestrator.SpecialistTimeout,
			DefaultProjectType: cfg.Orchestrator.DefaultProjectType,
		},
	)

	return &system{cfg: cfg, client: client, loop: loop}, nil
}
