package orchestrator

import (
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/bus"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/knowledge"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

// Status is a point-in-time snapshot of the whole system.
type Status struct {
	// ActiveProjects counts projects not yet completed or failed.
	ActiveProjects int `json:"active_projects"`
	// Projects reports per-project progress in creation order.
	Projects []models.ProjectReport `json:"projects"`
	// Memory summarizes knowledge store contents.
	Memory knowledge.Stats `json:"memory"`
	// Bus summarizes message traffic.
	Bus bus.Stats `json:"bus"`
	// ErrorCounts tallies failures by category since startup.
	ErrorCounts map[string]int `json:"error_counts,omitempty"`
}

// Status reports the current system snapshot.
func (l *Loop) Status() Status {
	l.mu.Lock()
	errs := make(map[string]int, len(l.errorCount))
	for k, v := range l.errorCount {
		errs[k] = v
	}
	l.mu.Unlock()

	return Status{
		ActiveProjects: l.coord.ActiveProjectCount(),
		Projects:       l.coord.AllProjectsStatus(),
		Memory:         l.store.MemoryStats(),
		Bus:            l.bus.Stats(),
		ErrorCounts:    errs,
	}
}
