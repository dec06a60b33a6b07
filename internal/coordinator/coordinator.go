// Package coordinator owns project state: it creates projects from templates,
// computes which tasks are runnable, and drives task assignment and completion
// over the message bus.
package coordinator

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/bus"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

var (
	// ErrUnknownProjectType is returned when no template exists for the
	// requested project type.
	ErrUnknownProjectType = errors.New("unknown project type")
	// ErrProjectNotFound is returned when a project ID does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrTaskNotFound is returned when a task name does not exist in the
	// project.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTaskTransition is returned when a task is not in the state
	// the operation requires.
	ErrInvalidTaskTransition = errors.New("invalid task transition")
)

// previewLimit caps how much of a task result is echoed into the project
// thread.
const previewLimit = 200

// Coordinator manages the lifecycle of projects and their task graphs.
// All methods are safe for concurrent use; operations on a single project
// are serialized by the coordinator lock.
type Coordinator struct {
	mu       sync.Mutex
	registry *Registry
	bus      *bus.Bus
	projects map[string]*models.Project
	order    []string
	nextID   int
}

// New creates a Coordinator backed by the given template registry and bus.
func New(registry *Registry, b *bus.Bus) *Coordinator {
	return &Coordinator{
		registry: registry,
		bus:      b,
		projects: make(map[string]*models.Project),
	}
}

// CreateProject instantiates a project from the template for the given type.
// phases narrows which research and analysis tasks are included; nil keeps
// every template task. Content and review tasks are always included, and
// dependencies on excluded tasks are pruned so the remaining graph stays
// runnable. A conversation thread is opened for the project's agents.
func (c *Coordinator) CreateProject(name, projectType, requirements string, phases []models.Phase) (*models.Project, error) {
	template, ok := c.registry.Tasks(projectType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProjectType, projectType)
	}

	included := make(map[string]bool, len(template))
	for _, tt := range template {
		if phaseIncluded(tt.Phase, phases) {
			included[tt.Name] = true
		}
	}

	tasks := make([]*models.Task, 0, len(template))
	for _, tt := range template {
		if !included[tt.Name] {
			continue
		}
		var deps []string
		for _, dep := range tt.Dependencies {
			if included[dep] {
				deps = append(deps, dep)
			}
		}
		tasks = append(tasks, &models.Task{
			Name:         tt.Name,
			Agent:        tt.Agent,
			Phase:        tt.Phase,
			Dependencies: deps,
			Status:       models.TaskStatusPending,
			Requirements: requirements,
		})
	}

	participants := append(c.registry.Agents(projectType), "coordinator")

	c.mu.Lock()
	c.nextID++
	project := &models.Project{
		ID:           fmt.Sprintf("proj_%d", c.nextID),
		Name:         name,
		Type:         projectType,
		Requirements: requirements,
		Tasks:        tasks,
		Status:       models.ProjectStatusCreated,
		ThreadID:     c.bus.CreateThread(name, participants),
		CreatedAt:    time.Now(),
	}
	c.projects[project.ID] = project
	c.order = append(c.order, project.ID)
	c.mu.Unlock()

	log.Printf("[coordinator] created project %s (%s) with %d tasks", project.ID, projectType, len(tasks))
	return cloneProject(project), nil
}

// phaseIncluded reports whether a template task survives the phase filter.
// Content and review tasks are never filtered out.
func phaseIncluded(phase models.Phase, phases []models.Phase) bool {
	if phases == nil {
		return true
	}
	if phase == models.PhaseContent || phase == models.PhaseReview {
		return true
	}
	for _, p := range phases {
		if p == phase {
			return true
		}
	}
	return false
}

// NextRunnableTasks returns copies of the pending tasks whose dependencies
// have all completed. It is a pure query: calling it does not change any
// task's state, and repeated calls return the same answer until a task
// transitions. A pending task with a dependency missing from the project is
// never runnable.
func (c *Coordinator) NextRunnableTasks(projectID string) ([]*models.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	project, ok := c.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, projectID)
	}

	var runnable []*models.Task
	for _, task := range project.Tasks {
		if task.Status == models.TaskStatusPending && depsSatisfied(project, task) {
			runnable = append(runnable, task.Clone())
		}
	}
	return runnable, nil
}

func depsSatisfied(project *models.Project, task *models.Task) bool {
	for _, dep := range task.Dependencies {
		depTask := project.Task(dep)
		if depTask == nil || depTask.Status != models.TaskStatusCompleted {
			return false
		}
	}
	return true
}

// AssignTask hands a pending, runnable task to an agent. Dependencies are
// re-validated at assignment time. On success the task moves to assigned, the
// project to in_progress, and an assignment message carrying the requirements
// and each dependency's result is sent to the agent.
func (c *Coordinator) AssignTask(projectID, taskName, agent string) error {
	c.mu.Lock()
	project, ok := c.projects[projectID]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrProjectNotFound, projectID)
	}
	task := project.Task(taskName)
	if task == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q in %s", ErrTaskNotFound, taskName, projectID)
	}
	if task.Status != models.TaskStatusPending {
		c.mu.Unlock()
		return fmt.Errorf("%w: task %q is %s, not pending", ErrInvalidTaskTransition, taskName, task.Status)
	}
	if !depsSatisfied(project, task) {
		c.mu.Unlock()
		return fmt.Errorf("%w: task %q has unmet dependencies", ErrInvalidTaskTransition, taskName)
	}

	now := time.Now()
	task.Status = models.TaskStatusAssigned
	task.AssignedAgent = agent
	task.AssignedAt = &now
	if project.Status == models.ProjectStatusCreated {
		project.Status = models.ProjectStatusInProgress
	}

	depResults := make(map[string]string, len(task.Dependencies))
	for _, dep := range task.Dependencies {
		depResults[dep] = project.Task(dep).Result
	}
	assignment := &models.TaskAssignment{
		ProjectID:         projectID,
		TaskName:          taskName,
		Requirements:      task.Requirements,
		DependencyResults: depResults,
	}
	c.mu.Unlock()

	c.bus.SendAssignment("coordinator", agent, assignment)
	log.Printf("[coordinator] assigned %s/%s to %s", projectID, taskName, agent)
	return nil
}

// CompleteTask records the result of an assigned task. A preview of the
// result is posted to the project thread, and when the last task completes
// the project is marked completed.
func (c *Coordinator) CompleteTask(projectID, taskName, result string) error {
	c.mu.Lock()
	project, ok := c.projects[projectID]
	if !ok {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrProjectNotFound, projectID)
	}
	task := project.Task(taskName)
	if task == nil {
		c.mu.Unlock()
		return fmt.Errorf("%w: %q in %s", ErrTaskNotFound, taskName, projectID)
	}
	if task.Status != models.TaskStatusAssigned {
		c.mu.Unlock()
		return fmt.Errorf("%w: task %q is %s, not assigned", ErrInvalidTaskTransition, taskName, task.Status)
	}

	now := time.Now()
	task.Status = models.TaskStatusCompleted
	task.Result = result
	task.CompletedAt = &now

	done := project.AllCompleted()
	if done {
		project.Status = models.ProjectStatusCompleted
		project.CompletedAt = &now
	}
	threadID := project.ThreadID
	from := task.AssignedAgent
	c.mu.Unlock()

	c.bus.PostToThread(threadID, from, fmt.Sprintf("Completed %s: %s", taskName, preview(result)))
	if done {
		c.bus.CloseThread(threadID)
		log.Printf("[coordinator] project %s completed", projectID)
	}
	return nil
}

// preview truncates a result for thread display, cutting on a rune boundary.
func preview(result string) string {
	if len(result) <= previewLimit {
		return result
	}
	cut := previewLimit
	for cut > 0 && !utf8.RuneStart(result[cut]) {
		cut--
	}
	return result[:cut] + "..."
}

// ProjectStatus returns a progress report for one project.
func (c *Coordinator) ProjectStatus(projectID string) (models.ProjectReport, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	project, ok := c.projects[projectID]
	if !ok {
		return models.ProjectReport{}, fmt.Errorf("%w: %q", ErrProjectNotFound, projectID)
	}
	return buildReport(project), nil
}

// AllProjectsStatus returns reports for every project in creation order.
func (c *Coordinator) AllProjectsStatus() []models.ProjectReport {
	c.mu.Lock()
	defer c.mu.Unlock()

	reports := make([]models.ProjectReport, 0, len(c.order))
	for _, id := range c.order {
		reports = append(reports, buildReport(c.projects[id]))
	}
	return reports
}

// ActiveProjectCount returns how many projects are not yet completed or
// failed.
func (c *Coordinator) ActiveProjectCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, p := range c.projects {
		if p.Status == models.ProjectStatusCreated || p.Status == models.ProjectStatusInProgress {
			count++
		}
	}
	return count
}

// Project returns a deep copy of a project.
func (c *Coordinator) Project(projectID string) (*models.Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	project, ok := c.projects[projectID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrProjectNotFound, projectID)
	}
	return cloneProject(project), nil
}

func buildReport(project *models.Project) models.ProjectReport {
	completed := 0
	for _, t := range project.Tasks {
		if t.Status == models.TaskStatusCompleted {
			completed++
		}
	}
	progress := 0.0
	if len(project.Tasks) > 0 {
		progress = float64(completed) / float64(len(project.Tasks)) * 100
	}

	var next []string
	for _, t := range project.Tasks {
		if t.Status == models.TaskStatusPending && depsSatisfied(project, t) {
			next = append(next, t.Name)
		}
	}

	return models.ProjectReport{
		ProjectID:      project.ID,
		Name:           project.Name,
		Type:           project.Type,
		Status:         project.Status,
		Progress:       fmt.Sprintf("%.1f%%", progress),
		TasksCompleted: fmt.Sprintf("%d/%d", completed, len(project.Tasks)),
		NextTasks:      next,
	}
}

func cloneProject(p *models.Project) *models.Project {
	c := *p
	c.Tasks = make([]*models.Task, len(p.Tasks))
	for i, t := range p.Tasks {
		c.Tasks[i] = t.Clone()
	}
	if p.CompletedAt != nil {
		at := *p.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}
