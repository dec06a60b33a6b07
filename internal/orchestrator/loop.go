// Package orchestrator runs the end-to-end request loop: it plans a project
// for each user request, drives the task graph through specialist agents, and
// synthesizes a validated final response.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/agent"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/bus"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/coordinator"
	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/internal/knowledge"
)

const (
	// maxRequestLen caps sanitized request length.
	maxRequestLen = 2000
	// minPlanLen is the minimum acceptable planning output.
	minPlanLen = 50
	// minSynthesisLen is the minimum acceptable synthesis output.
	minSynthesisLen = 100
)

// Options configures a Loop.
type Options struct {
	// MaxRetries bounds end-to-end attempts per request. Zero selects 3.
	MaxRetries int
	// SpecialistTimeout bounds each specialist task. Zero selects 2 minutes.
	SpecialistTimeout time.Duration
	// DefaultProjectType is used when a request matches no specific template.
	// Empty selects content_creation.
	DefaultProjectType string
}

func (o *Options) applyDefaults() {
	if o.MaxRetries <= 0 {
		o.MaxRetries = 3
	}
	if o.SpecialistTimeout <= 0 {
		o.SpecialistTimeout = 2 * time.Minute
	}
	if o.DefaultProjectType == "" {
		o.DefaultProjectType = "content_creation"
	}
}

// Loop orchestrates user requests end to end. It owns no state beyond error
// counters; project state lives in the coordinator and learned results in the
// knowledge store.
type Loop struct {
	coord   *coordinator.Coordinator
	bus     *bus.Bus
	store   *knowledge.Store
	team    map[string]agent.Specialist
	planner agent.Generator
	opts    Options

	mu         sync.Mutex
	errorCount map[string]int
}

// New creates a Loop. The planner generates project plans and final
// synthesis; team maps agent names to the specialists that execute tasks.
func New(coord *coordinator.Coordinator, b *bus.Bus, store *knowledge.Store, team map[string]agent.Specialist, planner agent.Generator, opts Options) *Loop {
	opts.applyDefaults()
	return &Loop{
		coord:      coord,
		bus:        b,
		store:      store,
		team:       team,
		planner:    planner,
		opts:       opts,
		errorCount: make(map[string]int),
	}
}

// Submit handles one user request and always returns a response. Transient
// failures are retried up to the configured attempt budget; if every attempt
// fails the deterministic fallback response is returned instead of an error.
func (l *Loop) Submit(ctx context.Context, request string) string {
	request = sanitize(request)
	if request == "" {
		return l.fallback("your request", "the request was empty")
	}

	var lastErr error
	for attempt := 1; attempt <= l.opts.MaxRetries; attempt++ {
		result, err := l.attempt(ctx, request)
		if err == nil {
			l.store.StoreInsight("user_requests",
				"Successfully handled: "+request, "orchestrator", 1.0)
			return result
		}
		lastErr = err
		l.countError(err)
		log.Printf("[orchestrator] attempt %d/%d failed: %v", attempt, l.opts.MaxRetries, err)
	}

	return l.fallback(TopicFrom(request), lastErr.Error())
}

// attempt runs one full plan-execute-synthesize cycle.
func (l *Loop) attempt(ctx context.Context, request string) (string, error) {
	plan, err := l.planner.Generate(ctx, planPrompt(request))
	if err != nil {
		return "", fmt.Errorf("planning: %w", err)
	}
	if len(strings.TrimSpace(plan)) < minPlanLen {
		return "", fmt.Errorf("planning: plan too short (%d chars)", len(plan))
	}

	projectType := parseProjectType(plan, ProjectTypeFor(request, l.opts.DefaultProjectType))
	topic := TopicFrom(request)

	// The content sub-type rides along in the requirements so the writer
	// knows what shape of deliverable to produce.
	requirements := fmt.Sprintf("%s\n\ncontent_type: %s", request, ContentTypeFor(request))
	project, err := l.coord.CreateProject(topic, projectType, requirements, PhasesFor(request))
	if errors.Is(err, coordinator.ErrUnknownProjectType) {
		// A planner naming an off-template type is a malformed plan, not a
		// failed attempt. Substitute the default type and carry on.
		log.Printf("[orchestrator] planned type %q not registered, using %s", projectType, l.opts.DefaultProjectType)
		projectType = l.opts.DefaultProjectType
		project, err = l.coord.CreateProject(topic, projectType, requirements, PhasesFor(request))
	}
	if err != nil {
		return "", fmt.Errorf("creating project: %w", err)
	}
	log.Printf("[orchestrator] project %s (%s) for %q", project.ID, projectType, topic)

	results, err := l.runProject(ctx, project.ID)
	if err != nil {
		return "", fmt.Errorf("running project %s: %w", project.ID, err)
	}

	synthesis, err := l.planner.Generate(ctx, synthesisPrompt(request, results))
	if err != nil {
		return "", fmt.Errorf("synthesis: %w", err)
	}
	if len(strings.TrimSpace(synthesis)) < minSynthesisLen {
		return "", fmt.Errorf("synthesis too short (%d chars)", len(synthesis))
	}

	final := finalResponse(topic, synthesis)
	if v := validateFinal(final, request); !v.OK() {
		// Enhancement is a local repair, not a retry: the attempt always
		// returns the enhanced response.
		final = l.enhance(ctx, final, request, topic, v)
	}
	return final, nil
}

// sanitize trims whitespace and caps request length on a rune boundary.
func sanitize(request string) string {
	request = strings.TrimSpace(request)
	if len(request) > maxRequestLen {
		cut := maxRequestLen
		for cut > 0 && !utf8.RuneStart(request[cut]) {
			cut--
		}
		request = strings.TrimSpace(request[:cut])
	}
	return request
}

// parseProjectType looks for a "project_type:" line in the plan, falling
// back to the keyword-derived type when absent or unusable.
func parseProjectType(plan, fallbackType string) string {
	for _, line := range strings.Split(plan, "\n") {
		line = strings.TrimSpace(strings.ToLower(line))
		if after, ok := strings.CutPrefix(line, "project_type:"); ok {
			if typ := strings.TrimSpace(after); typ != "" {
				return typ
			}
		}
	}
	return fallbackType
}

func planPrompt(request string) string {
	return fmt.Sprintf(`Plan how a team of specialist agents should handle this request:

%s

Name the project type on a line of the form "project_type: <content_creation|market_analysis|competitive_research>"
and outline the steps each specialist should take.`, request)
}

// resultPreviewLimit caps how much of each task result the synthesis prompt
// carries.
const resultPreviewLimit = 200

// synthesisPrompt condenses the task results into one prompt. Task names are
// sorted so identical inputs always yield an identical prompt.
func synthesisPrompt(request string, results map[string]string) string {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	fmt.Fprintf(&b, "Combine the team's task results into one final deliverable for this request:\n\n%s\n", request)
	for _, name := range names {
		fmt.Fprintf(&b, "\n## %s\n%s\n", name, truncate(results[name], resultPreviewLimit))
	}
	return b.String()
}

// truncate cuts s to at most n bytes on a rune boundary, marking the cut.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}

// finalResponse frames the synthesis with the goal marker the validator
// requires.
func finalResponse(topic, synthesis string) string {
	return fmt.Sprintf("GOAL: %s\n\n%s", topic, synthesis)
}

// fallback builds the deterministic last-resort response. It satisfies the
// same shape rules as a generated response so downstream consumers need no
// special case.
func (l *Loop) fallback(topic, reason string) string {
	log.Printf("[orchestrator] returning fallback response: %s", reason)
	return fmt.Sprintf(`GOAL: %s

We were unable to fully process this request automatically, so here is a summary of where things stand.
The team attempted to plan and execute the work but could not produce a validated result this time.
You can retry the request as-is, rephrase it with more specific requirements, or split it into smaller requests.
No partial results have been discarded; anything the team learned has been retained and will inform the next attempt.`, topic)
}

func (l *Loop) countError(err error) {
	key := "other"
	msg := err.Error()
	switch {
	case strings.Contains(msg, "planning"):
		key = "planning"
	case strings.Contains(msg, "synthesis"):
		key = "synthesis"
	case strings.Contains(msg, "validation"):
		key = "validation"
	case strings.Contains(msg, "running project"):
		key = "execution"
	}
	l.mu.Lock()
	l.errorCount[key]++
	l.mu.Unlock()
}
