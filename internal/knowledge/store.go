package knowledge

import (
	"sort"
	"sync"
	"time"
)

// accessLogCap bounds the access log to the most recent entries; the oldest
// are evicted first.
const accessLogCap = 1000

// Store is the process-wide knowledge store. Each category map is guarded by
// its own lock so unrelated categories do not serialize each other. All state
// is process-memory only and lost on restart.
type Store struct {
	factsMu sync.RWMutex
	facts   map[string]map[string]*Fact

	insightsMu sync.RWMutex
	insights   map[string][]*Insight
	insightSeq int

	templatesMu sync.RWMutex
	templates   map[string]map[string]*Template

	practicesMu sync.RWMutex
	practices   map[string][]*BestPractice

	prefsMu sync.RWMutex
	prefs   map[string]map[string]*Preference

	logMu     sync.Mutex
	accessLog []AccessRecord
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		facts:     make(map[string]map[string]*Fact),
		insights:  make(map[string][]*Insight),
		templates: make(map[string]map[string]*Template),
		practices: make(map[string][]*BestPractice),
		prefs:     make(map[string]map[string]*Preference),
	}
}

// StoreFact upserts a fact under (category, key). It always succeeds; a later
// write for the same key overwrites the earlier one.
func (s *Store) StoreFact(category, key, value, sourceAgent string, confidence float64) {
	s.factsMu.Lock()
	if s.facts[category] == nil {
		s.facts[category] = make(map[string]*Fact)
	}
	s.facts[category][key] = &Fact{
		Value:       value,
		SourceAgent: sourceAgent,
		Confidence:  confidence,
		StoredAt:    time.Now(),
	}
	s.factsMu.Unlock()

	s.logAccess("store_fact", sourceAgent, category+"."+key)
}

// GetFact returns a copy of the fact under (category, key), or (zero, false).
// A hit increments the fact's access count and is logged; a miss is not
// logged, matching the reference behavior.
func (s *Store) GetFact(category, key, requester string) (Fact, bool) {
	s.factsMu.Lock()
	fact, ok := s.facts[category][key]
	if ok {
		fact.AccessCount++
	}
	var out Fact
	if ok {
		out = *fact
	}
	s.factsMu.Unlock()

	if ok {
		s.logAccess("get_fact", requester, category+"."+key)
	}
	return out, ok
}

// StoreTemplate upserts a reusable template under (templateType, name).
func (s *Store) StoreTemplate(templateType, name, content, sourceAgent string) {
	s.templatesMu.Lock()
	if s.templates[templateType] == nil {
		s.templates[templateType] = make(map[string]*Template)
	}
	s.templates[templateType][name] = &Template{
		Content:     content,
		SourceAgent: sourceAgent,
		CreatedAt:   time.Now(),
	}
	s.templatesMu.Unlock()

	s.logAccess("store_template", sourceAgent, templateType)
}

// GetTemplate returns a copy of the template under (templateType, name), or
// (zero, false). A hit increments the usage count.
func (s *Store) GetTemplate(templateType, name, requester string) (Template, bool) {
	s.templatesMu.Lock()
	tmpl, ok := s.templates[templateType][name]
	if ok {
		tmpl.UsageCount++
	}
	var out Template
	if ok {
		out = *tmpl
	}
	s.templatesMu.Unlock()

	if ok {
		s.logAccess("get_template", requester, templateType+"."+name)
	}
	return out, ok
}

// StoreBestPractice appends a practice to a domain's list.
func (s *Store) StoreBestPractice(domain, practice, sourceAgent string, effectiveness float64) {
	s.practicesMu.Lock()
	s.practices[domain] = append(s.practices[domain], &BestPractice{
		Practice:           practice,
		SourceAgent:        sourceAgent,
		EffectivenessScore: effectiveness,
		StoredAt:           time.Now(),
		ValidationCount:    1,
	})
	s.practicesMu.Unlock()

	s.logAccess("store_best_practice", sourceAgent, domain)
}

// GetBestPractices returns a domain's practices sorted by effectiveness
// descending.
func (s *Store) GetBestPractices(domain, requester string) []BestPractice {
	s.practicesMu.RLock()
	list := s.practices[domain]
	out := make([]BestPractice, 0, len(list))
	for _, p := range list {
		out = append(out, *p)
	}
	s.practicesMu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EffectivenessScore > out[j].EffectivenessScore
	})

	s.logAccess("get_best_practices", requester, domain)
	return out
}

// StoreUserPreference upserts a preference under (userID, prefType).
func (s *Store) StoreUserPreference(userID, prefType, value, sourceAgent string) {
	s.prefsMu.Lock()
	if s.prefs[userID] == nil {
		s.prefs[userID] = make(map[string]*Preference)
	}
	s.prefs[userID][prefType] = &Preference{
		Value:       value,
		SourceAgent: sourceAgent,
		UpdatedAt:   time.Now(),
	}
	s.prefsMu.Unlock()

	s.logAccess("store_user_preference", sourceAgent, userID+"."+prefType)
}

// GetUserPreferences returns a copy of a user's preferences keyed by type.
// Missing users yield an empty map.
func (s *Store) GetUserPreferences(userID, requester string) map[string]Preference {
	s.prefsMu.RLock()
	out := make(map[string]Preference, len(s.prefs[userID]))
	for k, v := range s.prefs[userID] {
		out[k] = *v
	}
	s.prefsMu.RUnlock()

	s.logAccess("get_user_preferences", requester, userID)
	return out
}

// MemoryStats returns aggregate entry counts. No side effects: MemoryStats is
// not logged and does not touch access counters.
func (s *Store) MemoryStats() Stats {
	var st Stats

	s.factsMu.RLock()
	for _, m := range s.facts {
		st.TotalFacts += len(m)
	}
	s.factsMu.RUnlock()

	s.insightsMu.RLock()
	for _, list := range s.insights {
		st.TotalInsights += len(list)
	}
	s.insightsMu.RUnlock()

	s.templatesMu.RLock()
	for _, m := range s.templates {
		st.TotalTemplates += len(m)
	}
	s.templatesMu.RUnlock()

	s.practicesMu.RLock()
	for _, list := range s.practices {
		st.TotalBestPractices += len(list)
	}
	s.practicesMu.RUnlock()

	s.prefsMu.RLock()
	st.TotalUsers = len(s.prefs)
	s.prefsMu.RUnlock()

	s.logMu.Lock()
	st.TotalAccesses = len(s.accessLog)
	s.logMu.Unlock()

	return st
}

// AccessLog returns a copy of the bounded access log, oldest first.
func (s *Store) AccessLog() []AccessRecord {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	return append([]AccessRecord(nil), s.accessLog...)
}

// logAccess appends one record to the bounded access log, evicting the oldest
// entries past capacity. Logging exists for observability only and never
// blocks or fails a store or retrieve call.
func (s *Store) logAccess(action, agent, resource string) {
	s.logMu.Lock()
	defer s.logMu.Unlock()

	s.accessLog = append(s.accessLog, AccessRecord{
		Action:    action,
		Agent:     agent,
		Resource:  resource,
		Timestamp: time.Now(),
	})
	if len(s.accessLog) > accessLogCap {
		overflow := len(s.accessLog) - accessLogCap
		s.accessLog = append(s.accessLog[:0:0], s.accessLog[overflow:]...)
	}
}
