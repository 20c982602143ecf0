package standardize

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// Standardizer maps a filer's as-reported concepts onto a fixed set of
// standard concepts per statement type (spec.md §4.6). Schemas are
// loaded once (typically from pkg/core/edgar/standardize/schemas/) and
// reused across every filing; a Standardizer holds no per-filing
// state.
type Standardizer struct {
	schemas map[string]*StatementSchema // statementType -> schema
}

// NewStandardizer builds an empty Standardizer; call LoadSchema for
// each statement type's JSON mapping file.
func NewStandardizer() *Standardizer {
	return &Standardizer{schemas: make(map[string]*StatementSchema)}
}

// LoadSchema parses one statement type's JSON mapping schema and
// registers it, failing fast on a malformed schema (missing
// standardConcept, mixed-kind priority, malformed expression AST)
// rather than deferring the error to standardization time.
func (s *Standardizer) LoadSchema(data []byte) error {
	var schema StatementSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return fmt.Errorf("standardize: parsing schema: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return fmt.Errorf("standardize: invalid schema: %w", err)
	}
	s.schemas[schema.StatementType] = &schema
	return nil
}

// Result is one standard concept's resolved value for a statement,
// together with which rule (and, for computeAny, which operands) won.
type Result struct {
	StandardConcept string
	Value           float64
	SourceConcept   string // the as-reported concept selectAny chose; empty for computeAny
	Rule            Rule
	Computed        bool
}

// StandardizationFailure reports that no rule at any priority produced
// a value for a standard concept (spec.md §7 "Standardization
// failure": no mapping rule matched; value omitted, never
// fabricated").
type StandardizationFailure struct {
	StatementType   string
	StandardConcept string
}

func (e *StandardizationFailure) Error() string {
	return fmt.Sprintf("standardize: no rule produced a value for %s/%s", e.StatementType, e.StandardConcept)
}

// Standardize resolves every standard concept in statementType's
// schema against the as-reported facts supplied in reported (keyed by
// ConceptID, one value per concept for a single period), honoring
// industry hints and priority order, and never mixing selectAny and
// computeAny at the same priority (enforced at schema-load time).
// Concepts with no winning rule are omitted from Results and recorded
// in Failures rather than defaulting to zero.
func (s *Standardizer) Standardize(statementType string, industry string, reported map[xbrl.ConceptID]float64) ([]Result, []StandardizationFailure) {
	schema, ok := s.schemas[statementType]
	if !ok {
		return nil, nil
	}

	resolved := make(map[string]float64, len(schema.Concepts))
	var results []Result
	var failures []StandardizationFailure

	lookup := func(concept string) (float64, bool) {
		if v, ok := resolved[concept]; ok {
			return v, true
		}
		v, ok := reported[xbrl.ConceptID(concept)]
		return v, ok
	}

	for _, mapping := range schema.Concepts {
		rule, value, ok := resolveMapping(mapping, industry, lookup)
		if !ok {
			failures = append(failures, StandardizationFailure{StatementType: statementType, StandardConcept: mapping.StandardConcept})
			continue
		}
		source := ""
		if rule.Kind == RuleSelectAny {
			for _, c := range rule.Concepts {
				if _, found := lookup(c); found {
					source = c
					break
				}
			}
		}
		resolved[mapping.StandardConcept] = value
		results = append(results, Result{
			StandardConcept: mapping.StandardConcept,
			Value:           value,
			SourceConcept:   source,
			Rule:            rule,
			Computed:        rule.Kind == RuleComputeAny,
		})
	}
	return results, failures
}

// resolveMapping tries a mapping's rules in priority order (higher
// number first, matching the teacher's/schema convention of "priority
// 150 beats priority 110"; ties within the same priority never mix
// rule kinds so evaluation order between them does not matter).
func resolveMapping(mapping MappingSchema, industry string, lookup ConceptLookup) (Rule, float64, bool) {
	ordered := orderedByPriorityDesc(mapping.Rules)
	for _, rule := range ordered {
		if !industryMatches(rule.IndustryHints, industry) {
			continue
		}
		switch rule.Kind {
		case RuleSelectAny:
			for _, concept := range rule.Concepts {
				if v, ok := lookup(concept); ok {
					return rule, v, true
				}
			}
		case RuleComputeAny:
			if v, ok := rule.Expr.Eval(lookup); ok {
				return rule, v, true
			}
		}
	}
	return Rule{}, 0, false
}

// industryMatches reports whether any of a rule's industry hints
// applies to industry, matched case-insensitively and by substring
// rather than exact equality (spec.md §4.6: a hint like "Bank" must
// match an industry string of "Diversified Banks" or "Regional
// Banks"). A rule with no hints at all applies regardless of industry.
func industryMatches(hints []string, industry string) bool {
	if len(hints) == 0 {
		return true
	}
	lowerIndustry := strings.ToLower(industry)
	for _, h := range hints {
		if strings.Contains(lowerIndustry, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

// orderedByPriorityDesc sorts rules by descending priority (industry-
// specific hints use >=150, generic selectAny 110-120, computed
// fallback 80-100 — spec.md §4.6), so the highest-confidence rule is
// always tried first, without mutating the schema's own slice.
func orderedByPriorityDesc(rules []Rule) []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].Priority > out[j-1].Priority; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}
