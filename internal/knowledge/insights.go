package knowledge

import (
	"sort"
	"strings"
	"time"
)

// maxTags caps how many tags are derived from insight content.
const maxTags = 10

// stopWords are excluded from derived tags.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true,
	"but": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true, "is": true,
	"are": true, "was": true, "were": true,
}

// StoreInsight appends an insight to a topic's list. Tags are derived from
// the content automatically.
func (s *Store) StoreInsight(topic, content, sourceAgent string, relevance float64) {
	s.insightsMu.Lock()
	s.insightSeq++
	s.insights[topic] = append(s.insights[topic], &Insight{
		Content:        content,
		SourceAgent:    sourceAgent,
		RelevanceScore: relevance,
		StoredAt:       time.Now(),
		Tags:           extractTags(content),
		seq:            s.insightSeq,
	})
	s.insightsMu.Unlock()

	s.logAccess("store_insight", sourceAgent, topic)
}

// GetInsights returns up to limit insights for a topic, ranked by relevance
// score descending and most-recent-first among ties. Access counters are
// updated only on the returned subset.
func (s *Store) GetInsights(topic, requester string, limit int) []Insight {
	if limit <= 0 {
		limit = 5
	}

	s.insightsMu.Lock()
	list := s.insights[topic]
	ranked := append([]*Insight(nil), list...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].RelevanceScore != ranked[j].RelevanceScore {
			return ranked[i].RelevanceScore > ranked[j].RelevanceScore
		}
		if !ranked[i].StoredAt.Equal(ranked[j].StoredAt) {
			return ranked[i].StoredAt.After(ranked[j].StoredAt)
		}
		return ranked[i].seq > ranked[j].seq
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]Insight, 0, len(ranked))
	for _, ins := range ranked {
		ins.AccessCount++
		out = append(out, *ins)
	}
	s.insightsMu.Unlock()

	s.logAccess("get_insights", requester, topic)
	return out
}

// extractTags derives up to maxTags lowercase tags from words longer than
// three characters, excluding stop words.
func extractTags(text string) []string {
	var tags []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) > 3 && !stopWords[word] {
			tags = append(tags, word)
			if len(tags) == maxTags {
				break
			}
		}
	}
	return tags
}
