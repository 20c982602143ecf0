// Package statement implements the Statement Assembler (spec.md §4.5):
// it walks a presentation Tree for one role, projects the Fact Store
// onto it for a chosen period, and produces an ordered list of line
// items a renderer or the Concept Standardizer can consume.
package statement

import (
	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// LineItem is one row of an assembled statement: a concept's label,
// depth in the presentation tree, its resolved fact (if any fact
// exists for the chosen period), and whether the presentation tree
// marks it as a total.
type LineItem struct {
	Concept   xbrl.ConceptID
	Label     string
	Depth     int
	Abstract  bool
	IsTotal   bool
	Fact      *xbrl.Fact // nil when no fact exists for this concept/period
	Dimension *xbrl.Dimension
}

// Statement is the ordered, human-renderable result of assembling one
// presentation role against a FactStore for a single Period.
type Statement struct {
	Role  xbrl.RoleID
	Title string
	Items []LineItem
}

// Assembler walks presentation trees and resolves their concepts
// against a FactStore.
type Assembler struct {
	Concepts          map[xbrl.ConceptID]*xbrl.Concept
	PresentationTrees map[xbrl.RoleID]*xbrl.Tree
	CalculationTrees  map[xbrl.RoleID]*xbrl.Tree
	Store             *xbrl.FactStore
}

// NewAssembler builds an Assembler over one filing's loaded XBRL data.
func NewAssembler(result *xbrl.LoadResult) *Assembler {
	return &Assembler{
		Concepts:          result.Concepts,
		PresentationTrees: result.PresentationTrees,
		CalculationTrees:  result.CalculationTrees,
		Store:             result.Store,
	}
}

// Assemble walks the presentation tree for role and resolves every
// concept against facts whose period equals target (spec.md §4.5:
// "project the fact store onto the presentation tree for a chosen
// period"). A concept with no entity-default fact but at least one
// dimensional fact for the same period surfaces that dimensional value
// instead of leaving the line empty (spec.md §9 Open Question: an
// implementer decision, since the source was inconsistent here); the
// resulting LineItem.Dimension records which non-default member the
// value came from so the distinction is never silently lost.
func (a *Assembler) Assemble(role xbrl.RoleID, target xbrl.Period) (*Statement, error) {
	tree, ok := a.PresentationTrees[role]
	if !ok {
		return nil, &missingRoleError{Role: role}
	}

	byConceptDefault := a.indexDefaultFactsByConceptForPeriod(target)
	byConceptDimensional := a.indexFirstDimensionalFactByConceptForPeriod(target)

	out := &Statement{Role: role, Title: string(role)}
	calcTree := a.CalculationTrees[role]

	tree.Walk(func(id xbrl.TreeNodeID, n *xbrl.TreeNode) bool {
		concept := a.Concepts[n.Concept]
		label := n.Concept.LocalName()
		abstract := false
		if concept != nil {
			label = concept.Label(preferredOrStandard(n.PreferredLabel), "en")
			abstract = concept.Abstract
		}

		item := LineItem{
			Concept:  n.Concept,
			Label:    label,
			Depth:    n.Depth,
			Abstract: abstract,
			IsTotal:  n.PreferredLabel == xbrl.LabelTotal || isTotalByCalculation(calcTree, n.Concept),
		}
		if f, ok := byConceptDefault[n.Concept]; ok {
			fCopy := f
			item.Fact = &fCopy
		} else if f, ok := byConceptDimensional[n.Concept]; ok {
			fCopy := f
			item.Fact = &fCopy
			if len(f.Context.Dimensions) > 0 {
				dim := f.Context.Dimensions[0]
				item.Dimension = &dim
			}
		}
		out.Items = append(out.Items, item)
		return true
	})
	return out, nil
}

func preferredOrStandard(role xbrl.LabelRole) xbrl.LabelRole {
	if role == "" {
		return xbrl.LabelStandard
	}
	return role
}

// indexDefaultFactsByConceptForPeriod narrows the Fact Store to facts
// whose period exactly matches target and whose context carries no
// dimensions — the entity-default projection the primary statements
// use (spec.md §3 Context.IsDefault).
func (a *Assembler) indexDefaultFactsByConceptForPeriod(target xbrl.Period) map[xbrl.ConceptID]xbrl.Fact {
	out := make(map[xbrl.ConceptID]xbrl.Fact)
	for _, f := range a.Store.All() {
		if f.Context == nil || !f.Context.IsDefault() {
			continue
		}
		if !f.Context.Period.Equal(target) {
			continue
		}
		out[f.Concept] = f
	}
	return out
}

// indexFirstDimensionalFactByConceptForPeriod narrows the Fact Store
// to the first dimensional (non-default-context) fact found per
// concept for target, used only as a fallback when no entity-default
// fact exists for that concept and period.
func (a *Assembler) indexFirstDimensionalFactByConceptForPeriod(target xbrl.Period) map[xbrl.ConceptID]xbrl.Fact {
	out := make(map[xbrl.ConceptID]xbrl.Fact)
	for _, f := range a.Store.All() {
		if f.Context == nil || f.Context.IsDefault() {
			continue
		}
		if !f.Context.Period.Equal(target) {
			continue
		}
		if _, exists := out[f.Concept]; exists {
			continue
		}
		out[f.Concept] = f
	}
	return out
}

// isTotalByCalculation reports whether a concept is a summation
// parent (the "from" side of at least one summation-item arc, whether
// or not it is itself a child) in the calculation tree for this role — a
// structural confirmation independent of the presentation tree's own
// preferredLabel=total marker, per spec.md §4.5's note that total
// detection combines both signals.
func isTotalByCalculation(calcTree *xbrl.Tree, concept xbrl.ConceptID) bool {
	if calcTree == nil {
		return false
	}
	for i := range calcTree.Nodes {
		if calcTree.Nodes[i].Concept == concept && len(calcTree.Nodes[i].Children) > 0 {
			return true
		}
	}
	return false
}

type missingRoleError struct{ Role xbrl.RoleID }

func (e *missingRoleError) Error() string {
	return "statement: no presentation tree for role " + string(e.Role)
}
