package orchestrator

import (
	"context"
	"fmt"
	"log"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

// runProject drives a project's task graph to completion. Tasks become
// eligible purely through the coordinator's dependency tracking; each eligible
// task is assigned, executed by its specialist, and completed before the graph
// is queried again. Returns each task's result keyed by task name.
func (l *Loop) runProject(ctx context.Context, projectID string) (map[string]string, error) {
	results := make(map[string]string)

	for {
		// Cancellation is honored between tasks only, never mid-mutation.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		runnable, err := l.coord.NextRunnableTasks(projectID)
		if err != nil {
			return nil, err
		}
		if len(runnable) == 0 {
			break
		}

		for _, task := range runnable {
			specialist, ok := l.team[task.Agent]
			if !ok {
				return nil, fmt.Errorf("no specialist registered for agent %q", task.Agent)
			}
			if err := l.coord.AssignTask(projectID, task.Name, task.Agent); err != nil {
				return nil, err
			}

			taskContext := l.collectAssignment(task.Agent, projectID, task.Name)

			execCtx, cancel := context.WithTimeout(ctx, l.opts.SpecialistTimeout)
			result, err := specialist.Perform(execCtx, task.Name, taskContext)
			cancel()
			if err != nil {
				// Specialist failures degrade the task result rather
				// than aborting the project.
				result = fmt.Sprintf("%s completed with some limitations: %v", task.Name, err)
				l.countError(fmt.Errorf("specialist %s: %w", task.Agent, err))
				log.Printf("[orchestrator] %s/%s degraded: %v", projectID, task.Name, err)
			}

			if err := l.coord.CompleteTask(projectID, task.Name, result); err != nil {
				return nil, err
			}
			l.recordResult(projectID, task, result)
			results[task.Name] = result
		}
	}

	report, err := l.coord.ProjectStatus(projectID)
	if err != nil {
		return nil, err
	}
	if report.Status != models.ProjectStatusCompleted {
		return nil, fmt.Errorf("project stalled at %s with no runnable tasks", report.Progress)
	}
	return results, nil
}

// collectAssignment pulls this task's assignment message from the agent's
// mailbox and returns its execution context. Only the matching assignment is
// consumed; messages for other projects or tasks stay queued, since requests
// running concurrently share the specialists' mailboxes.
func (l *Loop) collectAssignment(agentName, projectID, taskName string) map[string]string {
	msgs := l.bus.DrainMatching(agentName, func(m models.Message) bool {
		return m.Assignment != nil &&
			m.Assignment.ProjectID == projectID &&
			m.Assignment.TaskName == taskName
	})

	taskContext := make(map[string]string)
	for _, msg := range msgs {
		taskContext["requirements"] = msg.Assignment.Requirements
		for dep, result := range msg.Assignment.DependencyResults {
			taskContext["result of "+dep] = result
		}
	}
	return taskContext
}

// recordResult writes a completed task's output into the knowledge store.
// Research results become facts; later phases become ranked insights under
// a per-phase topic.
func (l *Loop) recordResult(projectID string, task *models.Task, result string) {
	switch task.Phase {
	case models.PhaseResearch:
		l.store.StoreFact("research_findings", projectID+"."+task.Name, result, task.Agent, 0.9)
	case models.PhaseAnalysis:
		l.store.StoreInsight("analysis_results", result, task.Agent, 0.8)
	case models.PhaseContent:
		l.store.StoreInsight("content_drafts", result, task.Agent, 0.7)
	case models.PhaseReview:
		l.store.StoreInsight("review_feedback", result, task.Agent, 0.8)
	}
}
