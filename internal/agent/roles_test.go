package agent

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// scriptedGenerator returns canned responses and records prompts.
type scriptedGenerator struct {
	prompts []string
	reply   string
	err     error
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.prompts = append(g.prompts, prompt)
	if g.err != nil {
		return "", g.err
	}
	return g.reply, nil
}

func TestNewSpecialistRejectsUnknownRole(t *testing.T) {
	if _, err := NewSpecialist("plumber", &scriptedGenerator{}); err == nil {
		t.Fatal("expected error for unknown role")
	}
}

func TestPerformBuildsRolePrompt(t *testing.T) {
	gen := &scriptedGenerator{reply: "findings"}
	s, err := NewSpecialist(RoleResearcher, gen)
	if err != nil {
		t.Fatal(err)
	}

	result, err := s.Perform(context.Background(), "research_topic", map[string]string{
		"requirements": "write about solar",
	})
	if err != nil {
		t.Fatal(err)
	}
	if result != "findings" {
		t.Errorf("expected generator reply, got %q", result)
	}

	if len(gen.prompts) != 1 {
		t.Fatalf("expected 1 generate call, got %d", len(gen.prompts))
	}
	prompt := gen.prompts[0]
	if !strings.Contains(prompt, "research specialist") {
		t.Error("expected role instructions in prompt")
	}
	if !strings.Contains(prompt, "research_topic") || !strings.Contains(prompt, "write about solar") {
		t.Error("expected task and context in prompt")
	}
}

func TestPerformContextOrderingDeterministic(t *testing.T) {
	gen := &scriptedGenerator{reply: "ok"}
	s, _ := NewSpecialist(RoleWriter, gen)

	ctx := map[string]string{"b_second": "2", "a_first": "1"}
	s.Perform(context.Background(), "task", ctx)
	s.Perform(context.Background(), "task", ctx)

	if gen.prompts[0] != gen.prompts[1] {
		t.Error("expected identical prompts for identical input")
	}
	if strings.Index(gen.prompts[0], "a_first") > strings.Index(gen.prompts[0], "b_second") {
		t.Error("expected context keys in sorted order")
	}
}

func TestPerformWrapsGeneratorError(t *testing.T) {
	wantErr := errors.New("api down")
	s, _ := NewSpecialist(RoleCritic, &scriptedGenerator{err: wantErr})

	_, err := s.Perform(context.Background(), "review", nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped generator error, got %v", err)
	}
	if !strings.Contains(err.Error(), "critic") {
		t.Errorf("expected role in error, got %v", err)
	}
}

func TestTeamCoversAllRoles(t *testing.T) {
	team := Team(&scriptedGenerator{reply: "ok"})
	for _, role := range Roles() {
		if team[string(role)] == nil {
			t.Errorf("missing specialist for %s", role)
		}
	}
	if len(team) != 4 {
		t.Errorf("expected 4 specialists, got %d", len(team))
	}
}
