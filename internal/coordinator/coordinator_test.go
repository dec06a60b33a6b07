package coordinator

import (
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/bus"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

func newTestCoordinator() (*Coordinator, *bus.Bus) {
	b := bus.New()
	for _, agent := range []string{"coordinator", "researcher", "writer", "critic", "analyst"} {
		b.Register(agent)
	}
	return New(DefaultTemplates(), b), b
}

func TestCreateProjectUnknownType(t *testing.T) {
	c, _ := newTestCoordinator()

	_, err := c.CreateProject("x", "screenplay", "write a movie", nil)
	if !errors.Is(err, ErrUnknownProjectType) {
		t.Fatalf("expected ErrUnknownProjectType, got %v", err)
	}
}

func TestCreateProjectMonotonicIDs(t *testing.T) {
	c, _ := newTestCoordinator()

	p1, err := c.CreateProject("one", "content_creation", "req", nil)
	if err != nil {
		t.Fatal(err)
	}
	p2, _ := c.CreateProject("two", "market_analysis", "req", nil)

	if p1.ID != "proj_1" || p2.ID != "proj_2" {
		t.Errorf("expected proj_1 and proj_2, got %s and %s", p1.ID, p2.ID)
	}
}

func TestCreateProjectOpensThread(t *testing.T) {
	c, b := newTestCoordinator()

	p, _ := c.CreateProject("launch", "content_creation", "req", nil)
	if p.ThreadID == "" {
		t.Fatal("expected a thread to be opened")
	}

	thread, ok := b.ThreadHistory(p.ThreadID)
	if !ok {
		t.Fatal("thread not found on bus")
	}
	want := map[string]bool{"researcher": true, "writer": true, "critic": true, "coordinator": true}
	if len(thread.Participants) != len(want) {
		t.Fatalf("expected %d participants, got %v", len(want), thread.Participants)
	}
	for _, pt := range thread.Participants {
		if !want[pt] {
			t.Errorf("unexpected participant %q", pt)
		}
	}
}

func TestNextRunnableOnlyZeroDependencyTask(t *testing.T) {
	c, _ := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	runnable, err := c.NextRunnableTasks(p.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(runnable) != 1 || runnable[0].Name != "research_topic" {
		t.Fatalf("expected only research_topic runnable, got %v", runnable)
	}
}

func TestNextRunnableIsIdempotent(t *testing.T) {
	c, _ := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	first, _ := c.NextRunnableTasks(p.ID)
	second, _ := c.NextRunnableTasks(p.ID)
	if len(first) != len(second) {
		t.Fatalf("repeated query changed the answer: %d then %d", len(first), len(second))
	}

	// Mutating the returned copy must not leak into coordinator state.
	first[0].Status = models.TaskStatusCompleted
	third, _ := c.NextRunnableTasks(p.ID)
	if len(third) != 1 || third[0].Status != models.TaskStatusPending {
		t.Error("returned tasks should be copies")
	}
}

func TestDependencyGating(t *testing.T) {
	c, _ := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	// create_content cannot be assigned before research_topic completes.
	err := c.AssignTask(p.ID, "create_content", "writer")
	if !errors.Is(err, ErrInvalidTaskTransition) {
		t.Fatalf("expected ErrInvalidTaskTransition, got %v", err)
	}

	if err := c.AssignTask(p.ID, "research_topic", "researcher"); err != nil {
		t.Fatal(err)
	}
	// Still gated: research_topic is assigned, not completed.
	if err := c.AssignTask(p.ID, "create_content", "writer"); !errors.Is(err, ErrInvalidTaskTransition) {
		t.Fatalf("expected gating until completion, got %v", err)
	}

	if err := c.CompleteTask(p.ID, "research_topic", "findings"); err != nil {
		t.Fatal(err)
	}
	if err := c.AssignTask(p.ID, "create_content", "writer"); err != nil {
		t.Fatalf("expected create_content assignable after dependency completed, got %v", err)
	}
}

func TestAssignmentCarriesDependencyResults(t *testing.T) {
	c, b := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req text", nil)

	c.AssignTask(p.ID, "research_topic", "researcher")
	b.Drain("researcher")
	c.CompleteTask(p.ID, "research_topic", "the findings")
	c.AssignTask(p.ID, "create_content", "writer")

	msgs := b.Drain("writer")
	if len(msgs) != 1 {
		t.Fatalf("expected 1 assignment message, got %d", len(msgs))
	}
	a := msgs[0].Assignment
	if a == nil {
		t.Fatal("expected a structured assignment payload")
	}
	if a.ProjectID != p.ID || a.TaskName != "create_content" || a.Requirements != "req text" {
		t.Errorf("unexpected assignment: %+v", a)
	}
	if a.DependencyResults["research_topic"] != "the findings" {
		t.Errorf("expected dependency result carried, got %v", a.DependencyResults)
	}
}

func TestCompletePendingTaskFails(t *testing.T) {
	c, _ := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	err := c.CompleteTask(p.ID, "research_topic", "result")
	if !errors.Is(err, ErrInvalidTaskTransition) {
		t.Fatalf("expected ErrInvalidTaskTransition, got %v", err)
	}

	// Project state unchanged by the failed completion.
	report, _ := c.ProjectStatus(p.ID)
	if report.Status != models.ProjectStatusCreated {
		t.Errorf("expected project still created, got %s", report.Status)
	}
	if report.TasksCompleted != "0/4" {
		t.Errorf("expected 0/4 completed, got %s", report.TasksCompleted)
	}
}

func TestCompletedTaskNeverRegresses(t *testing.T) {
	c, _ := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	c.AssignTask(p.ID, "research_topic", "researcher")
	c.CompleteTask(p.ID, "research_topic", "result")

	if err := c.AssignTask(p.ID, "research_topic", "researcher"); !errors.Is(err, ErrInvalidTaskTransition) {
		t.Fatalf("expected completed task to reject assignment, got %v", err)
	}
	if err := c.CompleteTask(p.ID, "research_topic", "other"); !errors.Is(err, ErrInvalidTaskTransition) {
		t.Fatalf("expected completed task to reject completion, got %v", err)
	}

	proj, _ := c.Project(p.ID)
	if proj.Task("research_topic").Result != "result" {
		t.Error("result must not change after completion")
	}
}

func TestProjectCompletesAfterLastTask(t *testing.T) {
	c, b := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	for {
		runnable, err := c.NextRunnableTasks(p.ID)
		if err != nil {
			t.Fatal(err)
		}
		if len(runnable) == 0 {
			break
		}
		for _, task := range runnable {
			if err := c.AssignTask(p.ID, task.Name, task.Agent); err != nil {
				t.Fatal(err)
			}
			if err := c.CompleteTask(p.ID, task.Name, "done: "+task.Name); err != nil {
				t.Fatal(err)
			}
		}
	}

	report, _ := c.ProjectStatus(p.ID)
	if report.Status != models.ProjectStatusCompleted {
		t.Fatalf("expected completed, got %s", report.Status)
	}
	if report.Progress != "100.0%" || report.TasksCompleted != "4/4" {
		t.Errorf("unexpected report: %+v", report)
	}
	if c.ActiveProjectCount() != 0 {
		t.Errorf("expected 0 active projects, got %d", c.ActiveProjectCount())
	}

	// Each completion posts a preview into the project thread, and the
	// thread closes with the project.
	thread, _ := b.ThreadHistory(p.ThreadID)
	if len(thread.Messages) != 4 {
		t.Errorf("expected 4 thread posts, got %d", len(thread.Messages))
	}
	if thread.Status != models.ThreadClosed {
		t.Errorf("expected thread closed after completion, got %s", thread.Status)
	}
}

func TestThreadPreviewTruncated(t *testing.T) {
	c, b := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	long := strings.Repeat("z", 500)
	c.AssignTask(p.ID, "research_topic", "researcher")
	c.CompleteTask(p.ID, "research_topic", long)

	thread, _ := b.ThreadHistory(p.ThreadID)
	if len(thread.Messages) != 1 {
		t.Fatalf("expected 1 thread post, got %d", len(thread.Messages))
	}
	content := thread.Messages[0].Content
	if strings.Contains(content, long) {
		t.Error("expected preview to be truncated")
	}
	if !strings.HasSuffix(content, "...") {
		t.Errorf("expected ellipsis suffix, got %q", content)
	}
}

func TestThreadPreviewKeepsRunesIntact(t *testing.T) {
	c, b := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	// Three-byte runes so a naive byte cut would land mid-rune.
	long := strings.Repeat("世", 300)
	c.AssignTask(p.ID, "research_topic", "researcher")
	c.CompleteTask(p.ID, "research_topic", long)

	thread, _ := b.ThreadHistory(p.ThreadID)
	if len(thread.Messages) != 1 {
		t.Fatalf("expected 1 thread post, got %d", len(thread.Messages))
	}
	content := thread.Messages[0].Content
	if !utf8.ValidString(content) {
		t.Errorf("expected valid UTF-8 preview, got %q", content)
	}
	if !strings.HasSuffix(content, "...") {
		t.Errorf("expected ellipsis suffix, got %q", content)
	}
}

func TestPhaseFilterPrunesDependencies(t *testing.T) {
	c, _ := newTestCoordinator()

	// Excluding the research phase drops research_topic and prunes the
	// dependency from create_content, so content becomes runnable at once.
	p, err := c.CreateProject("x", "content_creation", "req", []models.Phase{})
	if err != nil {
		t.Fatal(err)
	}
	if p.Task("research_topic") != nil {
		t.Fatal("expected research task excluded")
	}
	if len(p.Tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(p.Tasks))
	}

	runnable, _ := c.NextRunnableTasks(p.ID)
	if len(runnable) != 1 || runnable[0].Name != "create_content" {
		t.Fatalf("expected create_content runnable after pruning, got %v", runnable)
	}
}

func TestPhaseFilterKeepsNamedPhases(t *testing.T) {
	c, _ := newTestCoordinator()

	p, _ := c.CreateProject("x", "market_analysis", "req", []models.Phase{models.PhaseResearch, models.PhaseAnalysis})
	if len(p.Tasks) != 4 {
		t.Fatalf("expected all 4 tasks kept, got %d", len(p.Tasks))
	}
}

func TestAllProjectsStatusOrder(t *testing.T) {
	c, _ := newTestCoordinator()
	c.CreateProject("one", "content_creation", "req", nil)
	c.CreateProject("two", "market_analysis", "req", nil)

	reports := c.AllProjectsStatus()
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].ProjectID != "proj_1" || reports[1].ProjectID != "proj_2" {
		t.Errorf("expected creation order, got %s then %s", reports[0].ProjectID, reports[1].ProjectID)
	}
}

func TestUnknownProjectAndTask(t *testing.T) {
	c, _ := newTestCoordinator()
	p, _ := c.CreateProject("x", "content_creation", "req", nil)

	if _, err := c.NextRunnableTasks("proj_99"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
	if err := c.AssignTask(p.ID, "nonexistent", "writer"); !errors.Is(err, ErrTaskNotFound) {
		t.Errorf("expected ErrTaskNotFound, got %v", err)
	}
	if err := c.CompleteTask("proj_99", "research_topic", "r"); !errors.Is(err, ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}
