package standardize

import "fmt"

// RuleKind distinguishes a selectAny rule (pick the first available
// reported concept verbatim) from a computeAny rule (derive a value
// from an arithmetic expression over other concepts). Spec.md §4.6
// forbids mixing the two kinds at the same priority; MappingSchema.Validate
// rejects such a schema, so a loaded schema never has a selectAny and a
// computeAny rule of equal priority.
type RuleKind string

const (
	RuleSelectAny RuleKind = "selectAny"
	RuleComputeAny RuleKind = "computeAny"
)

// Rule is one priority-ordered candidate for producing a standard
// concept's value. IndustryHints restricts a rule to filings whose SIC
// code (or a caller-supplied industry tag) matches one of the listed
// hints; an empty list applies to every industry.
type Rule struct {
	Kind          RuleKind `json:"kind"`
	Priority      int      `json:"priority"`
	Concepts      []string `json:"concepts,omitempty"` // selectAny candidates, tried in order
	Expr          *Expr    `json:"expr,omitempty"`      // computeAny formula
	IndustryHints []string `json:"industryHints,omitempty"`
}

// Validate checks a single rule's shape.
func (r *Rule) Validate() error {
	switch r.Kind {
	case RuleSelectAny:
		if len(r.Concepts) == 0 {
			return fmt.Errorf("selectAny rule at priority %d has no concepts", r.Priority)
		}
	case RuleComputeAny:
		if r.Expr == nil {
			return fmt.Errorf("computeAny rule at priority %d has no expr", r.Priority)
		}
		if err := r.Expr.Validate(); err != nil {
			return fmt.Errorf("computeAny rule at priority %d: %w", r.Priority, err)
		}
	default:
		return fmt.Errorf("unknown rule kind %q", r.Kind)
	}
	return nil
}

// MappingSchema is the ordered rule set for one standard concept
// within one statement type, loaded from a JSON schema file (spec.md
// §4.6: "JSON-configured mapping schemas per statement").
type MappingSchema struct {
	StandardConcept string `json:"standardConcept"`
	Label           string `json:"label"`
	Rules           []Rule `json:"rules"`
}

// Validate checks every rule and rejects a priority shared by a
// selectAny and a computeAny rule. Ordering across standard concepts
// is not checked here.
func (s *MappingSchema) Validate() error {
	if s.StandardConcept == "" {
		return fmt.Errorf("mapping schema missing standardConcept")
	}
	seenPriorities := map[int]RuleKind{}
	for i := range s.Rules {
		if err := s.Rules[i].Validate(); err != nil {
			return fmt.Errorf("%s: %w", s.StandardConcept, err)
		}
		if existing, ok := seenPriorities[s.Rules[i].Priority]; ok && existing != s.Rules[i].Kind {
			return fmt.Errorf("%s: priority %d mixes selectAny and computeAny rules", s.StandardConcept, s.Rules[i].Priority)
		}
		seenPriorities[s.Rules[i].Priority] = s.Rules[i].Kind
	}
	return nil
}

// StatementSchema is every standard concept's MappingSchema for one
// statement type (income, balance, cashflow, ...).
type StatementSchema struct {
	StatementType string          `json:"statementType"`
	Concepts      []MappingSchema `json:"concepts"`
}

// Validate checks every concept's MappingSchema in order and returns
// the first error. It does not check the order of standard concepts:
// a computeAny operand naming a standard concept listed later in
// Concepts is accepted, and at evaluation time it is looked up only
// among the reported concepts.
func (s *StatementSchema) Validate() error {
	resolved := map[string]bool{}
	for i := range s.Concepts {
		if err := s.Concepts[i].Validate(); err != nil {
			return err
		}
		resolved[s.Concepts[i].StandardConcept] = true
	}
	return nil
}
