package xbrl

import (
	"fmt"
	"sync"
)

// periodKey is the map key for the by-period index: an instant is
// keyed on (end, end), a duration on (start, end).
type periodKey struct {
	start, end string
}

// fiscalKey is the map key for the by-fiscal index.
type fiscalKey struct {
	year   int
	period FiscalPeriod
}

// DuplicateFactError reports a within-filing (concept, context, unit)
// collision for a numeric fact — spec.md §3 invariant: "Within a
// single filing, (concept, context, unit) is unique for numeric
// facts; collisions are parse errors."
type DuplicateFactError struct {
	Concept ConceptID
	Unit    string
}

func (e *DuplicateFactError) Error() string {
	return fmt.Sprintf("duplicate fact for concept %s unit %s within filing", e.Concept, e.Unit)
}

// FactStore is the in-memory, append-only-during-ingestion fact
// collection of spec.md §4.4. It is not strictly columnar; this
// implementation keeps Facts in a flat arena slice (FactID is the
// slice index) and maintains the five mandatory secondary indices
// alongside it. Once a filing (or a single EntityFacts download) has
// finished ingesting, the store is frozen and safe to share across
// goroutines for concurrent reads — Add is the only mutator and the
// caller is responsible for not calling it concurrently with reads.
type FactStore struct {
	mu sync.RWMutex

	facts   []Fact
	frozen  bool
	seenKey map[string]FactID // (concept,contextKey,unit) -> id, scoped to one filing's ingestion

	byConcept   map[ConceptID][]FactID
	byPeriod    map[periodKey][]FactID
	byStatement map[StatementType][]FactID
	byForm      map[string][]FactID
	byFiscal    map[fiscalKey][]FactID
}

// NewFactStore creates an empty store ready for ingestion.
func NewFactStore() *FactStore {
	return &FactStore{
		seenKey:     make(map[string]FactID),
		byConcept:   make(map[ConceptID][]FactID),
		byPeriod:    make(map[periodKey][]FactID),
		byStatement: make(map[StatementType][]FactID),
		byForm:      make(map[string][]FactID),
		byFiscal:    make(map[fiscalKey][]FactID),
	}
}

// Add inserts a Fact, assigning it the next FactID, and updates every
// index in O(1) amortized time. For numeric facts it enforces the
// (concept, context, unit) uniqueness invariant within the facts added
// so far to this store; pass allowDuplicates=true when ingesting
// EntityFacts data that spans many filings and is deliberately
// deduplicated later by the Stitching Engine instead.
func (s *FactStore) Add(f Fact, allowDuplicates bool) (FactID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frozen {
		return 0, fmt.Errorf("fact store is frozen, cannot add")
	}

	if !allowDuplicates {
		if _, numeric := f.NumericValue(); numeric && f.Context != nil {
			key := fmt.Sprintf("%s|%s|%s", f.Concept, f.Context.key(), f.Unit.Canonical)
			if _, dup := s.seenKey[key]; dup {
				return 0, &DuplicateFactError{Concept: f.Concept, Unit: f.Unit.Canonical}
			}
			s.seenKey[key] = FactID(len(s.facts))
		}
	}

	id := FactID(len(s.facts))
	f.ID = id
	s.facts = append(s.facts, f)

	s.byConcept[f.Concept] = append(s.byConcept[f.Concept], id)
	pk := periodKeyFor(f)
	s.byPeriod[pk] = append(s.byPeriod[pk], id)
	if f.StatementType != "" {
		s.byStatement[f.StatementType] = append(s.byStatement[f.StatementType], id)
	}
	if f.FormType != "" {
		s.byForm[f.FormType] = append(s.byForm[f.FormType], id)
	}
	if f.FiscalYear != 0 {
		fk := fiscalKey{year: f.FiscalYear, period: f.FiscalPeriod}
		s.byFiscal[fk] = append(s.byFiscal[fk], id)
	}
	return id, nil
}

func periodKeyFor(f Fact) periodKey {
	end := f.PeriodEnd.Format("2006-01-02")
	if f.PeriodType == PeriodInstant {
		return periodKey{start: end, end: end}
	}
	return periodKey{start: f.PeriodStart.Format("2006-01-02"), end: end}
}

// Freeze marks the store read-only. Safe to call more than once.
func (s *FactStore) Freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frozen = true
}

// Len returns the number of facts in the store.
func (s *FactStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.facts)
}

// Get returns the Fact for an id.
func (s *FactStore) Get(id FactID) (Fact, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if int(id) >= len(s.facts) {
		return Fact{}, false
	}
	return s.facts[int(id)], true
}

// All returns every fact in insertion (document) order. The returned
// slice is a copy; callers must not rely on it aliasing store memory.
func (s *FactStore) All() []Fact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// ByConcept returns every fact for a concept, in insertion order.
func (s *FactStore) ByConcept(c ConceptID) []Fact {
	return s.resolve(s.indexSnapshot(s.byConcept[c]))
}

// ByStatement returns every fact for a statement type.
func (s *FactStore) ByStatement(t StatementType) []Fact {
	return s.resolve(s.indexSnapshot(s.byStatement[t]))
}

// ByForm returns every fact for a form type.
func (s *FactStore) ByForm(form string) []Fact {
	return s.resolve(s.indexSnapshot(s.byForm[form]))
}

// ByFiscal returns every fact for a (year, period) pair.
func (s *FactStore) ByFiscal(year int, period FiscalPeriod) []Fact {
	return s.resolve(s.indexSnapshot(s.byFiscal[fiscalKey{year: year, period: period}]))
}

func (s *FactStore) indexSnapshot(ids []FactID) []FactID {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FactID, len(ids))
	copy(out, ids)
	return out
}

func (s *FactStore) resolve(ids []FactID) []Fact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Fact, 0, len(ids))
	for _, id := range ids {
		if int(id) < len(s.facts) {
			out = append(out, s.facts[int(id)])
		}
	}
	return out
}
