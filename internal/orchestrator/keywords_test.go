package orchestrator

import (
	"testing"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

func TestPhasesFor(t *testing.T) {
	tests := []struct {
		request string
		want    []models.Phase
	}{
		{"research solar energy", []models.Phase{models.PhaseResearch}},
		{"compare our options", []models.Phase{models.PhaseAnalysis}},
		{"analyze market trends", []models.Phase{models.PhaseResearch, models.PhaseAnalysis}},
		{"write me a poem", []models.Phase{}},
	}

	for _, tt := range tests {
		got := PhasesFor(tt.request)
		if len(got) != len(tt.want) {
			t.Errorf("PhasesFor(%q) = %v, want %v", tt.request, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("PhasesFor(%q) = %v, want %v", tt.request, got, tt.want)
			}
		}
	}
}

func TestPhasesForNeverNil(t *testing.T) {
	// An empty filter means "optional phases excluded", which is distinct
	// from a nil "no filter". The keyword detector always filters.
	if PhasesFor("write me a poem") == nil {
		t.Fatal("expected empty non-nil slice")
	}
}

func TestContentTypeFor(t *testing.T) {
	tests := []struct {
		request string
		want    string
	}{
		{"make an insta post about coffee", "social_post"},
		{"Instagram campaign for spring", "social_post"},
		{"write a blog about Go", "blog_post"},
		{"draft an article on testing", "article"},
		{"quarterly report on sales", "report"},
		{"something else entirely", "article"},
	}

	for _, tt := range tests {
		if got := ContentTypeFor(tt.request); got != tt.want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", tt.request, got, tt.want)
		}
	}
}

func TestTopicFrom(t *testing.T) {
	tests := []struct {
		request string
		want    string
	}{
		{"write about coffee", "write about coffee"},
		{"write a post (cold brew trends) for the blog", "cold brew trends"},
		{"mismatched (paren", "mismatched (paren"},
		{"empty parens () here", "empty parens () here"},
		{"  padded request  ", "padded request"},
	}

	for _, tt := range tests {
		if got := TopicFrom(tt.request); got != tt.want {
			t.Errorf("TopicFrom(%q) = %q, want %q", tt.request, got, tt.want)
		}
	}
}

func TestProjectTypeFor(t *testing.T) {
	tests := []struct {
		request string
		want    string
	}{
		{"study our competitors", "competitive_research"},
		{"competitive landscape overview", "competitive_research"},
		{"market analysis for EVs", "market_analysis"},
		{"write a blog post", "content_creation"},
	}

	for _, tt := range tests {
		if got := ProjectTypeFor(tt.request, "content_creation"); got != tt.want {
			t.Errorf("ProjectTypeFor(%q) = %q, want %q", tt.request, got, tt.want)
		}
	}
}
