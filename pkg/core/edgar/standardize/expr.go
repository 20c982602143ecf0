package standardize

import "fmt"

// Op is an arithmetic AST operator for a computeAny rule (spec.md §9
// redesign note: standardization math is an explicit small AST
// interpreted here, never Go's reflect or a dynamic expression-string
// evaluator, so a malformed schema fails to load instead of panicking
// at standardization time).
type Op string

const (
	OpIdentity Op = "id"
	OpAdd      Op = "add"
	OpSub      Op = "sub"
	OpMul      Op = "mul"
	OpDiv      Op = "div"
)

// Expr is one node of the arithmetic AST. A leaf node has Concept set
// and no Args; an internal node has Op and its operands in Args (a
// single one for id).
// JSON schemas encode this directly: {"op":"sub","args":[{"concept":"us-gaap:Assets"},{"concept":"us-gaap:Liabilities"}]}.
type Expr struct {
	Op      Op      `json:"op,omitempty"`
	Concept string  `json:"concept,omitempty"`
	Args    []*Expr `json:"args,omitempty"`
}

// ConceptLookup resolves a concept id to a numeric value, returning
// false when no fact exists for it in the current evaluation context
// (one statement, one period).
type ConceptLookup func(concept string) (float64, bool)

// Eval interprets the AST against a concept lookup, short-circuiting
// to (0, false) the moment any leaf is missing — a computeAny rule
// never silently treats a missing operand as zero.
func (e *Expr) Eval(lookup ConceptLookup) (float64, bool) {
	if e == nil {
		return 0, false
	}
	if e.Concept != "" {
		return lookup(e.Concept)
	}
	if len(e.Args) == 0 {
		return 0, false
	}
	switch e.Op {
	case OpIdentity:
		return e.Args[0].Eval(lookup)
	case OpAdd:
		sum := 0.0
		for _, a := range e.Args {
			v, ok := a.Eval(lookup)
			if !ok {
				return 0, false
			}
			sum += v
		}
		return sum, true
	case OpSub:
		if len(e.Args) != 2 {
			return 0, false
		}
		a, ok := e.Args[0].Eval(lookup)
		if !ok {
			return 0, false
		}
		b, ok := e.Args[1].Eval(lookup)
		if !ok {
			return 0, false
		}
		return a - b, true
	case OpMul:
		product := 1.0
		for _, a := range e.Args {
			v, ok := a.Eval(lookup)
			if !ok {
				return 0, false
			}
			product *= v
		}
		return product, true
	case OpDiv:
		if len(e.Args) != 2 {
			return 0, false
		}
		a, ok := e.Args[0].Eval(lookup)
		if !ok {
			return 0, false
		}
		b, ok := e.Args[1].Eval(lookup)
		if !ok || b == 0 {
			return 0, false
		}
		return a / b, true
	default:
		return 0, false
	}
}

// Validate checks the AST is well-formed before it is ever evaluated,
// so a bad schema file is a load-time error, not a standardization-
// time panic.
func (e *Expr) Validate() error {
	if e == nil {
		return fmt.Errorf("nil expression")
	}
	if e.Concept != "" {
		if len(e.Args) != 0 {
			return fmt.Errorf("leaf expression %q must not have args", e.Concept)
		}
		return nil
	}
	switch e.Op {
	case OpIdentity:
		if len(e.Args) != 1 {
			return fmt.Errorf("id requires exactly 1 arg, got %d", len(e.Args))
		}
	case OpSub, OpDiv:
		if len(e.Args) != 2 {
			return fmt.Errorf("%s requires exactly 2 args, got %d", e.Op, len(e.Args))
		}
	case OpAdd, OpMul:
		if len(e.Args) < 2 {
			return fmt.Errorf("%s requires at least 2 args, got %d", e.Op, len(e.Args))
		}
	default:
		return fmt.Errorf("unknown op %q", e.Op)
	}
	for _, a := range e.Args {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}
