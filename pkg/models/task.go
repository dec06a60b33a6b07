// Package models defines the shared data types for projects, tasks,
// and inter-agent messaging.
package models

import "time"

// TaskStatus represents the current state of a task.
type TaskStatus string

const (
	// TaskStatusPending indicates the task has not been assigned yet.
	TaskStatusPending TaskStatus = "pending"
	// TaskStatusAssigned indicates the task has been handed to an agent.
	TaskStatusAssigned TaskStatus = "assigned"
	// TaskStatusCompleted indicates the task finished and has a result.
	TaskStatusCompleted TaskStatus = "completed"
)

// Valid returns true if the status is a known value.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusAssigned, TaskStatusCompleted:
		return true
	default:
		return false
	}
}

// Phase identifies which stage of the request pipeline a task belongs to.
type Phase string

const (
	// PhaseResearch covers information-gathering tasks.
	PhaseResearch Phase = "research"
	// PhaseAnalysis covers data analysis and insight tasks.
	PhaseAnalysis Phase = "analysis"
	// PhaseContent covers content creation and revision tasks.
	PhaseContent Phase = "content"
	// PhaseReview covers quality review tasks.
	PhaseReview Phase = "review"
)

// Valid returns true if the phase is a known value.
func (p Phase) Valid() bool {
	switch p {
	case PhaseResearch, PhaseAnalysis, PhaseContent, PhaseReview:
		return true
	default:
		return false
	}
}

// Task represents one named, dependency-gated unit of work within a project.
type Task struct {
	// Name is the task identifier, unique within its project.
	Name string `json:"name"`
	// Agent is the role name the template planned for this task.
	Agent string `json:"agent"`
	// Phase is the pipeline stage this task belongs to.
	Phase Phase `json:"phase"`
	// Dependencies lists task names that must complete before this task
	// may be assigned.
	Dependencies []string `json:"dependencies,omitempty"`
	// Status is the current state of the task.
	Status TaskStatus `json:"status"`
	// Requirements is the payload carried from project creation.
	Requirements string `json:"requirements,omitempty"`
	// AssignedAgent is the agent actually working the task. Empty until
	// assignment.
	AssignedAgent string `json:"assigned_agent,omitempty"`
	// Result holds the task output. Set only on completion.
	Result string `json:"result,omitempty"`
	// AssignedAt is when the task was assigned, if it has been.
	AssignedAt *time.Time `json:"assigned_at,omitempty"`
	// CompletedAt is when the task was completed, if it has been.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	if t.Dependencies != nil {
		c.Dependencies = append([]string(nil), t.Dependencies...)
	}
	if t.AssignedAt != nil {
		at := *t.AssignedAt
		c.AssignedAt = &at
	}
	if t.CompletedAt != nil {
		ct := *t.CompletedAt
		c.CompletedAt = &ct
	}
	return &c
}

// ProjectStatus represents the lifecycle state of a project.
type ProjectStatus string

const (
	// ProjectStatusCreated indicates the project exists but no task has run.
	ProjectStatusCreated ProjectStatus = "created"
	// ProjectStatusInProgress indicates at least one task has been assigned.
	ProjectStatusInProgress ProjectStatus = "in_progress"
	// ProjectStatusCompleted indicates every task is completed.
	ProjectStatusCompleted ProjectStatus = "completed"
	// ProjectStatusFailed indicates the project was abandoned.
	ProjectStatusFailed ProjectStatus = "failed"
)

// Valid returns true if the status is a known value.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusCreated, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusFailed:
		return true
	default:
		return false
	}
}

// Project is one user request's unit of orchestrated work, composed of tasks.
type Project struct {
	// ID is the unique, monotonically generated project identifier.
	ID string `json:"id"`
	// Name is the human-readable project name.
	Name string `json:"name"`
	// Type selects the task template the project was created from.
	Type string `json:"type"`
	// Requirements is the payload passed to every task.
	Requirements string `json:"requirements,omitempty"`
	// Tasks is the ordered task list cloned from the template.
	Tasks []*Task `json:"tasks"`
	// Status is the current lifecycle state.
	Status ProjectStatus `json:"status"`
	// ThreadID is the owning conversation thread.
	ThreadID string `json:"thread_id,omitempty"`
	// CreatedAt is when the project was created.
	CreatedAt time.Time `json:"created_at"`
	// CompletedAt is when the last task completed, if all have.
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Task returns the task with the given name, or nil if absent.
func (p *Project) Task(name string) *Task {
	for _, t := range p.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}

// AllCompleted returns true if every task in the project is completed.
func (p *Project) AllCompleted() bool {
	for _, t := range p.Tasks {
		if t.Status != TaskStatusCompleted {
			return false
		}
	}
	return true
}

// ProjectReport is a derived, read-only view of project progress.
type ProjectReport struct {
	// ProjectID is the project identifier.
	ProjectID string `json:"project_id"`
	// Name is the project name.
	Name string `json:"name"`
	// Type is the template type the project was created from.
	Type string `json:"type"`
	// Status is the current project status.
	Status ProjectStatus `json:"status"`
	// Progress is the completion percentage with one decimal, e.g. "50.0%".
	Progress string `json:"progress"`
	// TasksCompleted is "completed/total", e.g. "2/4".
	TasksCompleted string `json:"tasks_completed"`
	// NextTasks names the tasks currently runnable.
	NextTasks []string `json:"next_tasks"`
}
