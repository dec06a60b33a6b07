package knowledge

import "testing"

func TestSearchAcrossFactsAndInsights(t *testing.T) {
	s := NewStore()
	s.StoreFact("research_findings", "ev_market", "electric vehicle sales doubled", "researcher", 0.9)
	s.StoreInsight("market", "electric vehicle adoption is accelerating", "analyst", 0.8)
	s.StoreFact("unrelated", "weather", "it rained on tuesday", "researcher", 0.9)

	results := s.SearchKnowledge("electric vehicle", "reader", 10)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	kinds := map[SearchResultKind]bool{}
	for _, r := range results {
		kinds[r.Kind] = true
	}
	if !kinds[ResultFact] || !kinds[ResultInsight] {
		t.Errorf("expected one fact and one insight, got %+v", results)
	}
}

func TestSearchCaseInsensitive(t *testing.T) {
	s := NewStore()
	s.StoreFact("cat", "key", "Renewable Energy Trends", "a", 1.0)

	results := s.SearchKnowledge("renewable energy", "reader", 10)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Relevance <= 0 {
		t.Errorf("expected positive relevance, got %f", results[0].Relevance)
	}
}

func TestSearchRankingAndLimit(t *testing.T) {
	s := NewStore()
	s.StoreFact("cat", "a", "solar power", "x", 1.0)
	s.StoreFact("cat", "b", "solar panels and wind farms", "x", 1.0)
	s.StoreInsight("cat", "solar power output is rising", "x", 1.0)
	s.StoreInsight("cat", "solar power", "x", 1.0)

	// Substring matching: fact b never matches the full query.
	results := s.SearchKnowledge("solar power", "reader", 2)
	if len(results) != 2 {
		t.Fatalf("expected limit to truncate to 2, got %d", len(results))
	}
	for _, r := range results {
		if r.Key == "b" {
			t.Errorf("fact without the query substring should not match")
		}
	}
	if results[0].Relevance < results[1].Relevance {
		t.Errorf("expected descending relevance, got %f then %f",
			results[0].Relevance, results[1].Relevance)
	}
}

func TestSearchNoMatch(t *testing.T) {
	s := NewStore()
	s.StoreFact("cat", "key", "value", "a", 1.0)

	if results := s.SearchKnowledge("zebra", "reader", 10); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestWordOverlap(t *testing.T) {
	tests := []struct {
		query string
		text  string
		want  float64
	}{
		{"solar power", "solar power rising", 1.0},
		{"solar power", "solar panels", 0.5},
		{"solar", "wind farms", 0.0},
		{"", "anything", 0.0},
	}

	for _, tt := range tests {
		if got := wordOverlap(tt.query, tt.text); got != tt.want {
			t.Errorf("wordOverlap(%q, %q) = %f, want %f", tt.query, tt.text, got, tt.want)
		}
	}
}
