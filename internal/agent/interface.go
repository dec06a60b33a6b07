// Package agent defines the specialist agents that execute project tasks,
// backed by the Anthropic API.
package agent

import "context"

// Generator produces a text completion for a prompt. Implementations must be
// safe for concurrent use.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Specialist performs one task using its role expertise. taskContext carries
// named inputs such as dependency results and requirements.
type Specialist interface {
	Perform(ctx context.Context, task string, taskContext map[string]string) (string, error)
}

// Role identifies a specialist's area of expertise.
type Role string

const (
	// RoleResearcher gathers information on a topic.
	RoleResearcher Role = "researcher"
	// RoleWriter creates and revises content.
	RoleWriter Role = "writer"
	// RoleCritic reviews content for quality.
	RoleCritic Role = "critic"
	// RoleAnalyst interprets data and extracts insights.
	RoleAnalyst Role = "analyst"
)

// Valid returns true if the role is a known value.
func (r Role) Valid() bool {
	switch r {
	case RoleResearcher, RoleWriter, RoleCritic, RoleAnalyst:
		return true
	default:
		return false
	}
}

// Roles returns every known specialist role in pipeline order.
func Roles() []Role {
	return []Role{RoleResearcher, RoleWriter, RoleCritic, RoleAnalyst}
}
