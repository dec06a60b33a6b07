package knowledge

import (
	"sort"
	"strings"
)

// SearchKnowledge matches query as a case-insensitive substring against the
// identifying fields and content of facts and insights, scores each hit by
// word overlap with the matched text, and returns the globally ranked top
// results, truncated to limit.
func (s *Store) SearchKnowledge(query, requester string, limit int) []SearchResult {
	if limit <= 0 {
		limit = 10
	}
	needle := strings.ToLower(query)

	var results []SearchResult

	s.factsMu.RLock()
	for category, facts := range s.facts {
		for key, fact := range facts {
			haystack := category + " " + key + " " + fact.Value
			if strings.Contains(strings.ToLower(haystack), needle) {
				results = append(results, SearchResult{
					Kind:      ResultFact,
					Category:  category,
					Key:       key,
					Content:   fact.Value,
					Relevance: wordOverlap(query, haystack),
				})
			}
		}
	}
	s.factsMu.RUnlock()

	s.insightsMu.RLock()
	for topic, insights := range s.insights {
		for _, ins := range insights {
			haystack := topic + " " + ins.Content
			if strings.Contains(strings.ToLower(haystack), needle) {
				results = append(results, SearchResult{
					Kind:      ResultInsight,
					Topic:     topic,
					Content:   ins.Content,
					Relevance: wordOverlap(query, haystack),
				})
			}
		}
	}
	s.insightsMu.RUnlock()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})
	if len(results) > limit {
		results = results[:limit]
	}

	s.logAccess("search_knowledge", requester, query)
	return results
}

// wordOverlap returns the fraction of query words present in text.
func wordOverlap(query, text string) float64 {
	queryWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		queryWords[w] = true
	}
	if len(queryWords) == 0 {
		return 0
	}

	textWords := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		textWords[w] = true
	}

	overlap := 0
	for w := range queryWords {
		if textWords[w] {
			overlap++
		}
	}
	return float64(overlap) / float64(len(queryWords))
}
