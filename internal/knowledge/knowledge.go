// Package knowledge provides the shared in-memory knowledge store: versioned
// facts, ranked insights, reusable templates, best practices, and per-user
// preferences, with bounded access logging.
package knowledge

import "time"

// Fact is a single stored fact, unique per (category, key). Later writes
// overwrite earlier ones.
type Fact struct {
	// Value is the fact content.
	Value string `json:"value"`
	// SourceAgent is who stored the fact.
	SourceAgent string `json:"source_agent"`
	// Confidence is the caller-asserted confidence in [0, 1].
	Confidence float64 `json:"confidence"`
	// StoredAt is when the fact was written.
	StoredAt time.Time `json:"stored_at"`
	// AccessCount is how many times the fact was read.
	AccessCount int `json:"access_count"`
}

// Insight is one entry in a topic's append-only insight list.
type Insight struct {
	// Content is the insight text.
	Content string `json:"content"`
	// SourceAgent is who stored the insight.
	SourceAgent string `json:"source_agent"`
	// RelevanceScore is the caller-asserted relevance used for ranking.
	RelevanceScore float64 `json:"relevance_score"`
	// StoredAt is when the insight was written.
	StoredAt time.Time `json:"stored_at"`
	// Tags are lowercase keywords derived from the content.
	Tags []string `json:"tags,omitempty"`
	// AccessCount is how many times the insight was returned by a retrieval.
	AccessCount int `json:"access_count"`

	// seq breaks StoredAt ties for recency ordering. Insertions within the
	// same clock tick still rank most-recent-first.
	seq int
}

// Template is a reusable template, unique per (type, name).
type Template struct {
	// Content is the template body.
	Content string `json:"content"`
	// SourceAgent is who stored the template.
	SourceAgent string `json:"source_agent"`
	// CreatedAt is when the template was stored.
	CreatedAt time.Time `json:"created_at"`
	// UsageCount is how many times the template was retrieved.
	UsageCount int `json:"usage_count"`
	// EffectivenessRating is a caller-maintained rating.
	EffectivenessRating float64 `json:"effectiveness_rating"`
}

// BestPractice is one entry in a domain's best-practice list.
type BestPractice struct {
	// Practice is the practice text.
	Practice string `json:"practice"`
	// SourceAgent is who stored the practice.
	SourceAgent string `json:"source_agent"`
	// EffectivenessScore is the caller-asserted score used for ranking.
	EffectivenessScore float64 `json:"effectiveness_score"`
	// StoredAt is when the practice was written.
	StoredAt time.Time `json:"stored_at"`
	// ValidationCount is how many times the practice was confirmed.
	ValidationCount int `json:"validation_count"`
}

// Preference is one stored user preference value.
type Preference struct {
	// Value is the preference content.
	Value string `json:"value"`
	// SourceAgent is who stored the preference.
	SourceAgent string `json:"source_agent"`
	// UpdatedAt is when the preference was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// AccessRecord is one immutable entry in the bounded access log.
type AccessRecord struct {
	// Action names the store operation, e.g. "get_fact".
	Action string `json:"action"`
	// Agent is the caller.
	Agent string `json:"agent"`
	// Resource identifies what was touched, e.g. "category.key".
	Resource string `json:"resource"`
	// Timestamp is when the access happened.
	Timestamp time.Time `json:"timestamp"`
}

// Stats aggregates per-category entry counts. Read-only, no side effects.
type Stats struct {
	TotalFacts         int `json:"total_facts"`
	TotalInsights      int `json:"total_insights"`
	TotalTemplates     int `json:"total_templates"`
	TotalBestPractices int `json:"total_best_practices"`
	TotalUsers         int `json:"total_users"`
	TotalAccesses      int `json:"total_accesses"`
}

// SearchResultKind distinguishes fact hits from insight hits.
type SearchResultKind string

const (
	// ResultFact marks a search hit from the fact store.
	ResultFact SearchResultKind = "fact"
	// ResultInsight marks a search hit from the insight store.
	ResultInsight SearchResultKind = "insight"
)

// SearchResult is one globally-ranked hit from SearchKnowledge.
type SearchResult struct {
	// Kind is fact or insight.
	Kind SearchResultKind `json:"kind"`
	// Category is the fact category (facts only).
	Category string `json:"category,omitempty"`
	// Key is the fact key (facts only).
	Key string `json:"key,omitempty"`
	// Topic is the insight topic (insights only).
	Topic string `json:"topic,omitempty"`
	// Content is the matched entry content.
	Content string `json:"content"`
	// Relevance is the query-word overlap score in [0, 1].
	Relevance float64 `json:"relevance"`
}
