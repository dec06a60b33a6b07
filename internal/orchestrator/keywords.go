package orchestrator

import (
	"strings"

	"github.com/ali3dev/ali3dev-agentic-ai-by-aliarslan/pkg/models"
)

// researchKeywords trigger inclusion of research-phase tasks.
var researchKeywords = []string{"research", "analyze", "find", "market", "data", "trends"}

// analysisKeywords trigger inclusion of analysis-phase tasks.
var analysisKeywords = []string{"analyze", "insights", "trends", "compare", "data"}

// PhasesFor inspects a request and returns the optional phases its wording
// asks for. Content and review phases are always run regardless.
func PhasesFor(request string) []models.Phase {
	lower := strings.ToLower(request)
	phases := []models.Phase{}
	if containsAny(lower, researchKeywords) {
		phases = append(phases, models.PhaseResearch)
	}
	if containsAny(lower, analysisKeywords) {
		phases = append(phases, models.PhaseAnalysis)
	}
	return phases
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// ContentTypeFor classifies a request into a content type by keyword.
func ContentTypeFor(request string) string {
	lower := strings.ToLower(request)
	switch {
	case strings.Contains(lower, "insta") || strings.Contains(lower, "instagram"):
		return "social_post"
	case strings.Contains(lower, "blog"):
		return "blog_post"
	case strings.Contains(lower, "article"):
		return "article"
	case strings.Contains(lower, "report"):
		return "report"
	default:
		return "article"
	}
}

// TopicFrom extracts the working topic from a request. A parenthesized
// clause narrows the topic to its contents; otherwise the whole request is
// the topic.
func TopicFrom(request string) string {
	open := strings.Index(request, "(")
	if open >= 0 {
		if end := strings.Index(request[open:], ")"); end > 0 {
			inner := strings.TrimSpace(request[open+1 : open+end])
			if inner != "" {
				return inner
			}
		}
	}
	return strings.TrimSpace(request)
}

// ProjectTypeFor picks the project template a request should use. Requests
// about markets map to market_analysis, competitor-focused requests to
// competitive_research, and everything else falls back to the default.
func ProjectTypeFor(request, defaultType string) string {
	lower := strings.ToLower(request)
	switch {
	case strings.Contains(lower, "competitor") || strings.Contains(lower, "competitive"):
		return "competitive_research"
	case strings.Contains(lower, "market analysis") || strings.Contains(lower, "market research"):
		return "market_analysis"
	default:
		return defaultType
	}
}
