package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// rolePrompts are the expertise instructions prepended to every task prompt.
var rolePrompts = map[Role]string{
	RoleResearcher: "You are a research specialist. Gather accurate, relevant information " +
		"on the given topic and present your findings as clear, structured notes.",
	RoleWriter: "You are a content writing specialist. Produce well-structured, engaging " +
		"content that satisfies the stated requirements, using any research provided.",
	RoleCritic: "You are a quality review specialist. Evaluate the provided content against " +
		"the requirements and give specific, actionable feedback.",
	RoleAnalyst: "You are a data analysis specialist. Interpret the provided information, " +
		"identify trends, and summarize the key insights and their implications.",
}

// specialist performs tasks for one role by prompting a Generator.
type specialist struct {
	role Role
	gen  Generator
}

// NewSpecialist returns a Specialist for the given role backed by gen.
func NewSpecialist(role Role, gen Generator) (Specialist, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	return &specialist{role: role, gen: gen}, nil
}

// Perform builds a role-specific prompt from the task and its context and
// generates the result.
func (s *specialist) Perform(ctx context.Context, task string, taskContext map[string]string) (string, error) {
	var b strings.Builder
	b.WriteString(rolePrompts[s.role])
	b.WriteString("\n\nTask: ")
	b.WriteString(task)

	// Deterministic context ordering keeps prompts reproducible.
	keys := make([]string, 0, len(taskContext))
	for k := range taskContext {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "\n\n%s:\n%s", k, taskContext[k])
	}

	result, err := s.gen.Generate(ctx, b.String())
	if err != nil {
		return "", fmt.Errorf("%s: %w", s.role, err)
	}
	return result, nil
}

// Team builds one Specialist per known role, all backed by the same
// Generator, keyed by role name.
func Team(gen Generator) map[string]Specialist {
	team := make(map[string]Specialist, len(Roles()))
	for _, role := range Roles() {
		s, _ := NewSpecialist(role, gen)
		team[string(role)] = s
	}
	return team
}
