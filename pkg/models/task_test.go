package models

import (
	"testing"
	"time"
)

func TestTaskStatusValid(t *testing.T) {
	valid := []TaskStatus{TaskStatusPending, TaskStatusAssigned, TaskStatusCompleted}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	invalid := []TaskStatus{"", "done", "in_progress", "PENDING"}
	for _, s := range invalid {
		if s.Valid() {
			t.Errorf("expected %q to be invalid", s)
		}
	}
}

func TestProjectStatusValid(t *testing.T) {
	valid := []ProjectStatus{ProjectStatusCreated, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusFailed}
	for _, s := range valid {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}

	if ProjectStatus("active").Valid() {
		t.Error("expected unknown status to be invalid")
	}
}

func TestTaskClone(t *testing.T) {
	now := time.Now()
	orig := &Task{
		Name:         "create_content",
		Agent:        "writer",
		Phase:        PhaseContent,
		Dependencies: []string{"research_topic"},
		Status:       TaskStatusAssigned,
		AssignedAt:   &now,
	}

	c := orig.Clone()

	c.Dependencies[0] = "changed"
	if orig.Dependencies[0] != "research_topic" {
		t.Error("clone shares dependency slice with original")
	}

	*c.AssignedAt = now.Add(time.Hour)
	if !orig.AssignedAt.Equal(now) {
		t.Error("clone shares AssignedAt pointer with original")
	}
}

func TestProjectTaskLookup(t *testing.T) {
	p := &Project{
		Tasks: []*Task{
			{Name: "research_topic"},
			{Name: "create_content"},
		},
	}

	if got := p.Task("create_content"); got == nil || got.Name != "create_content" {
		t.Errorf("expected to find create_content, got %v", got)
	}
	if got := p.Task("missing"); got != nil {
		t.Errorf("expected nil for missing task, got %v", got)
	}
}

func TestProjectAllCompleted(t *testing.T) {
	p := &Project{
		Tasks: []*Task{
			{Name: "a", Status: TaskStatusCompleted},
			{Name: "b", Status: TaskStatusAssigned},
		},
	}

	if p.AllCompleted() {
		t.Error("expected AllCompleted to be false with an assigned task")
	}

	p.Tasks[1].Status = TaskStatusCompleted
	if !p.AllCompleted() {
		t.Error("expected AllCompleted to be true")
	}
}
