// Package query implements the Entity Facts Query Engine (spec.md
// §4.7): a fluent, immutable filter builder over a FactStore, plus the
// SEC Company Facts API ingestion that populates one (entityfacts.go).
package query

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// filterFunc is one predicate in the chain; filters commute (spec.md
// §4.7 invariant: "filter chaining is commutative — by_concept().
// by_fiscal_year(2023) produces the same result as
// by_fiscal_year(2023).by_concept()") because every filter is a pure
// narrowing predicate over the same candidate set, applied in Execute
// rather than incrementally mutating shared state.
type filterFunc func(f xbrl.Fact) bool

// Query is an immutable fluent builder: every With*/By* method returns
// a new Query value, leaving the receiver untouched, so a partially
// built query can be safely reused as a base for several branches.
type Query struct {
	store   *xbrl.FactStore
	filters []filterFunc
	sortBy  sortKind
	limit   int // 0 means unlimited
}

type sortKind int

const (
	sortNone sortKind = iota
	sortLatestFirst
)

// New starts a query over a FactStore.
func New(store *xbrl.FactStore) Query {
	return Query{store: store}
}

func (q Query) with(fn filterFunc) Query {
	next := q
	next.filters = append(append([]filterFunc(nil), q.filters...), fn)
	return next
}

// ByConcept narrows to an exact concept id.
func (q Query) ByConcept(concept xbrl.ConceptID) Query {
	return q.with(func(f xbrl.Fact) bool { return f.Concept == concept })
}

// ByLabel fuzzy-matches text against the concept's local name (spec.md
// §4.7: "by_label(text, fuzzy=true)"), grounded on the teacher's own
// substring-heuristic label matching in validation.go/line_finder.go
// but extended with token-overlap scoring since a concept's local name
// ("NetIncomeLoss") rarely contains a query phrase ("net income") as a
// literal substring. A match is a hit if text appears verbatim
// (case-insensitively) in the local name, or if at least half of
// text's words also appear as words in the local name once both are
// split on case and separator boundaries. Spec.md §9 notes no external
// fuzzy-matching dependency is warranted for this scale of lookup, so
// the scoring stays hand-rolled.
func (q Query) ByLabel(text string) Query {
	queryTokens := labelTokens(text)
	lowerQuery := strings.ToLower(text)
	return q.with(func(f xbrl.Fact) bool {
		return fuzzyLabelMatch(queryTokens, lowerQuery, f.Concept.LocalName())
	})
}

// fuzzyLabelMatch implements the ByLabel scoring described above.
func fuzzyLabelMatch(queryTokens []string, lowerQuery, localName string) bool {
	lowerLocal := strings.ToLower(localName)
	if lowerQuery != "" && strings.Contains(lowerLocal, lowerQuery) {
		return true
	}
	if len(queryTokens) == 0 {
		return false
	}
	localSet := make(map[string]bool)
	for _, t := range labelTokens(localName) {
		localSet[t] = true
	}
	overlap := 0
	for _, t := range queryTokens {
		if localSet[t] {
			overlap++
		}
	}
	return float64(overlap)/float64(len(queryTokens)) >= 0.5
}

// labelTokens splits an XBRL-style identifier or a free-text query
// into lowercase words, breaking on camelCase boundaries ("NetIncome"
// -> "net", "income") as well as spaces, underscores and hyphens.
func labelTokens(s string) []string {
	var tokens []string
	var cur []rune
	runes := []rune(s)
	flush := func() {
		if len(cur) > 0 {
			tokens = append(tokens, strings.ToLower(string(cur)))
			cur = nil
		}
	}
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if i > 0 && unicode.IsUpper(r) && !unicode.IsUpper(runes[i-1]) && !unicode.IsDigit(runes[i-1]) {
				flush()
			}
			cur = append(cur, r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

// ByFiscalYear narrows to one fiscal year.
func (q Query) ByFiscalYear(year int) Query {
	return q.with(func(f xbrl.Fact) bool { return f.FiscalYear == year })
}

// ByFiscalPeriod narrows to one fiscal period (FY/Q1/Q2/Q3/Q4).
func (q Query) ByFiscalPeriod(period xbrl.FiscalPeriod) Query {
	return q.with(func(f xbrl.Fact) bool { return f.FiscalPeriod == period })
}

// DateRange narrows to facts whose period end falls within [start, end].
func (q Query) DateRange(start, end time.Time) Query {
	return q.with(func(f xbrl.Fact) bool {
		return !f.PeriodEnd.Before(start) && !f.PeriodEnd.After(end)
	})
}

// AsOf narrows to facts filed on or before asOf, the standard
// point-in-time query (spec.md §4.7: "as_of enables point-in-time
// reconstruction").
func (q Query) AsOf(asOf time.Time) Query {
	return q.with(func(f xbrl.Fact) bool { return !f.FilingDate.After(asOf) })
}

// HighQualityOnly narrows to DataQuality == QualityHigh facts.
func (q Query) HighQualityOnly() Query {
	return q.with(func(f xbrl.Fact) bool { return f.DataQuality == xbrl.QualityHigh })
}

// MinConfidence narrows to facts whose ConfidenceScore is at least min.
func (q Query) MinConfidence(min float64) Query {
	return q.with(func(f xbrl.Fact) bool { return f.ConfidenceScore >= min })
}

// ByStatementType narrows to one statement classification.
func (q Query) ByStatementType(t xbrl.StatementType) Query {
	return q.with(func(f xbrl.Fact) bool { return f.StatementType == t })
}

// ByFormType narrows to one SEC form type (10-K, 10-Q, ...).
func (q Query) ByFormType(form string) Query {
	return q.with(func(f xbrl.Fact) bool { return f.FormType == form })
}

// Latest sorts results by period end descending and keeps, per
// concept, only the facts with the most recent period end.
func (q Query) Latest() Query {
	next := q
	next.sortBy = sortLatestFirst
	next.limit = -1 // sentinel: dedupe-to-one-per-concept, applied in Execute
	return next
}

// LatestPeriods keeps the n most recent distinct periods per concept.
func (q Query) LatestPeriods(n int) Query {
	next := q
	next.sortBy = sortLatestFirst
	next.limit = n
	return next
}

// Execute runs every filter in the chain over the store's facts and
// applies any ordering/limiting stage last.
func (q Query) Execute() []xbrl.Fact {
	var out []xbrl.Fact
	for _, f := range q.store.All() {
		if q.matches(f) {
			out = append(out, f)
		}
	}
	if q.sortBy == sortLatestFirst {
		sort.SliceStable(out, func(i, j int) bool { return out[i].PeriodEnd.After(out[j].PeriodEnd) })
		if q.limit == -1 {
			out = keepLatestPerConcept(out, 1)
		} else if q.limit > 0 {
			out = keepLatestPerConcept(out, q.limit)
		}
	}
	return out
}

func (q Query) matches(f xbrl.Fact) bool {
	for _, fn := range q.filters {
		if !fn(f) {
			return false
		}
	}
	return true
}

// keepLatestPerConcept assumes facts are already sorted newest-first
// and keeps, per concept, only the first n distinct periods
// encountered.
func keepLatestPerConcept(facts []xbrl.Fact, n int) []xbrl.Fact {
	count := map[xbrl.ConceptID]map[string]bool{}
	out := make([]xbrl.Fact, 0, len(facts))
	for _, f := range facts {
		periods := count[f.Concept]
		if periods == nil {
			periods = make(map[string]bool)
			count[f.Concept] = periods
		}
		key := f.PeriodEnd.Format("2006-01-02")
		if !periods[key] {
			if len(periods) >= n {
				continue
			}
			periods[key] = true
		}
		out = append(out, f)
	}
	return out
}
