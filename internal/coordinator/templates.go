package coordinator

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

// TemplateTask describes one task in a project template: which agent runs it,
// which phase it belongs to, and which tasks must complete before it can run.
type TemplateTask struct {
	Name         string       `yaml:"task"`
	Agent        string       `yaml:"agent"`
	Phase        models.Phase `yaml:"phase"`
	Dependencies []string     `yaml:"dependencies"`
}

// Registry maps project type names to their task templates. A Registry is
// built once at startup and read-only afterwards.
type Registry struct {
	templates map[string][]TemplateTask
}

// DefaultTemplates returns the built-in project templates.
func DefaultTemplates() *Registry {
	return &Registry{templates: map[string][]TemplateTask{
		"content_creation": {
			{Name: "research_topic", Agent: "researcher", Phase: models.PhaseResearch},
			{Name: "create_content", Agent: "writer", Phase: models.PhaseContent, Dependencies: []string{"research_topic"}},
			{Name: "review_content", Agent: "critic", Phase: models.PhaseReview, Dependencies: []string{"create_content"}},
			{Name: "revise_content", Agent: "writer", Phase: models.PhaseContent, Dependencies: []string{"review_content"}},
		},
		"market_analysis": {
			{Name: "gather_market_data", Agent: "researcher", Phase: models.PhaseResearch},
			{Name: "analyze_data", Agent: "analyst", Phase: models.PhaseAnalysis, Dependencies: []string{"gather_market_data"}},
			{Name: "create_report", Agent: "writer", Phase: models.PhaseContent, Dependencies: []string{"analyze_data"}},
			{Name: "review_report", Agent: "critic", Phase: models.PhaseReview, Dependencies: []string{"create_report"}},
		},
		"competitive_research": {
			{Name: "competitor_analysis", Agent: "researcher", Phase: models.PhaseResearch},
			{Name: "competitive_insights", Agent: "analyst", Phase: models.PhaseAnalysis, Dependencies: []string{"competitor_analysis"}},
			{Name: "strategy_document", Agent: "writer", Phase: models.PhaseContent, Dependencies: []string{"competitive_insights"}},
			{Name: "final_review", Agent: "critic", Phase: models.PhaseReview, Dependencies: []string{"strategy_document"}},
		},
	}}
}

// LoadTemplates reads project templates from a YAML file. Loaded templates
// replace the built-in definition for the same project type and add new types
// alongside the defaults.
func LoadTemplates(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading templates: %w", err)
	}

	var loaded map[string][]TemplateTask
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}

	reg := DefaultTemplates()
	for typ, tasks := range loaded {
		if err := validateTemplate(typ, tasks); err != nil {
			return nil, err
		}
		reg.templates[typ] = tasks
	}
	return reg, nil
}

// validateTemplate rejects templates with unnamed tasks, duplicate task names,
// or dependencies on tasks the template does not define.
func validateTemplate(typ string, tasks []TemplateTask) error {
	if len(tasks) == 0 {
		return fmt.Errorf("template %q: no tasks defined", typ)
	}
	names := make(map[string]bool, len(tasks))
	for _, task := range tasks {
		if task.Name == "" || task.Agent == "" {
			return fmt.Errorf("template %q: task needs both a name and an agent", typ)
		}
		if !task.Phase.Valid() {
			return fmt.Errorf("template %q: task %q has invalid phase %q", typ, task.Name, task.Phase)
		}
		if names[task.Name] {
			return fmt.Errorf("template %q: duplicate task %q", typ, task.Name)
		}
		names[task.Name] = true
	}
	for _, task := range tasks {
		for _, dep := range task.Dependencies {
			if !names[dep] {
				return fmt.Errorf("template %q: task %q depends on unknown task %q", typ, task.Name, dep)
			}
		}
	}
	return nil
}

// Has reports whether a template exists for the given project type.
func (r *Registry) Has(projectType string) bool {
	_, ok := r.templates[projectType]
	return ok
}

// Tasks returns the template tasks for a project type.
func (r *Registry) Tasks(projectType string) ([]TemplateTask, bool) {
	tasks, ok := r.templates[projectType]
	return tasks, ok
}

// Types returns all known project types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.templates))
	for typ := range r.templates {
		types = append(types, typ)
	}
	sort.Strings(types)
	return types
}

// Agents returns the distinct agents a project type's template assigns work
// to, in template order.
func (r *Registry) Agents(projectType string) []string {
	seen := make(map[string]bool)
	var agents []string
	for _, task := range r.templates[projectType] {
		if !seen[task.Agent] {
			seen[task.Agent] = true
			agents = append(agents, task.Agent)
		}
	}
	return agents
}
