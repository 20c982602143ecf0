package xbrl

import (
	"fmt"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/edgarerr"
)

// LoadInput bundles the raw bytes of one filing's XBRL package. Not
// every field is required: a filing may ship only an instance plus a
// shared industry taxonomy schema, in which case SchemaFiles may be
// empty and concept metadata degrades to label-linkbase-only entries
// (spec.md §4.3 degradation: missing concept metadata still yields a
// usable, if less precisely typed, Fact).
type LoadInput struct {
	SchemaFiles       [][]byte
	LabelFiles        [][]byte
	PresentationFiles [][]byte
	DefinitionFiles   [][]byte
	CalculationFiles  [][]byte
	Instance          []byte
}

// LoadMeta carries the filing-level attributes the instance document
// itself does not encode (spec.md §3 Fact fields FilingDate, FormType,
// Accession come from the filing index / submissions metadata, not
// from the XBRL document).
type LoadMeta struct {
	FilingDate string // YYYY-MM-DD
	FormType   string
	Accession  string
}

// LoadResult is the fully resolved output of one filing's XBRL
// Linkbase Loader run: concept metadata merged from schema+label,
// every per-role tree, the document's context pool, and a FactStore
// populated with every fact the instance declared.
type LoadResult struct {
	Concepts           map[ConceptID]*Concept
	PresentationTrees  map[RoleID]*Tree
	DefinitionTrees    map[RoleID]*Tree
	CalculationTrees   map[RoleID]*Tree
	Contexts           *ContextPool
	Store              *FactStore
}

// Load runs the deterministic XBRL Linkbase Loader pipeline (spec.md
// §4.3: schema -> label -> presentation -> definition -> calculation
// -> instance) over one filing's files and returns a populated
// LoadResult. Degradation is local: a malformed linkbase file is
// skipped with its error folded into the returned slice of non-fatal
// issues rather than aborting the whole filing, per spec.md §7's
// Degradation error kind ("recover locally, continue processing").
func Load(in LoadInput, meta LoadMeta) (*LoadResult, []error, error) {
	var warnings []error

	concepts := make(map[ConceptID]*Concept)
	for _, sf := range in.SchemaFiles {
		parsed, err := ParseSchema(sf)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("schema: %w", err))
			continue
		}
		for id, c := range parsed {
			concepts[id] = c
		}
	}

	for _, lf := range in.LabelFiles {
		labels, err := ParseLabelLinkbase(lf)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("label linkbase: %w", err))
			continue
		}
		MergeLabels(concepts, labels)
	}

	presentationTrees := make(map[RoleID]*Tree)
	for _, pf := range in.PresentationFiles {
		trees, err := ParsePresentationLinkbase(pf)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("presentation linkbase: %w", err))
			continue
		}
		for role, t := range trees {
			presentationTrees[role] = t
		}
	}

	definitionTrees := make(map[RoleID]*Tree)
	for _, df := range in.DefinitionFiles {
		trees, err := ParseDefinitionLinkbase(df)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("definition linkbase: %w", err))
			continue
		}
		for role, t := range trees {
			definitionTrees[role] = t
		}
	}

	calculationTrees := make(map[RoleID]*Tree)
	for _, cf := range in.CalculationFiles {
		trees, err := ParseCalculationLinkbase(cf)
		if err != nil {
			warnings = append(warnings, fmt.Errorf("calculation linkbase: %w", err))
			continue
		}
		for role, t := range trees {
			calculationTrees[role] = t
		}
	}

	if len(in.Instance) == 0 {
		return nil, warnings, &edgarerr.InputCorruption{Reason: "empty instance document"}
	}
	instanceDoc, err := ParseInstance(in.Instance)
	if err != nil {
		return nil, warnings, &edgarerr.XBRLParseError{Context: "instance", Err: err}
	}

	store := NewFactStore()
	statementByRole := classifyStatementRoles(presentationTrees)

	for _, rf := range instanceDoc.Facts {
		ctx, ok := instanceDoc.Contexts.Lookup(rf.ContextID)
		if !ok {
			warnings = append(warnings, fmt.Errorf("fact %s references unknown context %s", rf.Concept, rf.ContextID))
			continue
		}
		unit := instanceDoc.Units[rf.UnitRef]
		concept := concepts[rf.Concept]

		f := resolveFact(rf, ctx, unit, concept, meta)
		f.StatementType = statementForConcept(rf.Concept, statementByRole, presentationTrees)

		if _, err := store.Add(f, false); err != nil {
			warnings = append(warnings, err)
		}
	}
	store.Freeze()

	return &LoadResult{
		Concepts:          concepts,
		PresentationTrees: presentationTrees,
		DefinitionTrees:   definitionTrees,
		CalculationTrees:  calculationTrees,
		Contexts:          instanceDoc.Contexts,
		Store:             store,
	}, warnings, nil
}

// resolveFact turns a RawInstanceFact plus its resolved context/unit/
// concept into an immutable Fact, applying the Unit & Period
// Normalizer's value-kind tagging and decimals scaling.
func resolveFact(rf RawInstanceFact, ctx *Context, unit Unit, concept *Concept, meta LoadMeta) Fact {
	dt := DataTypeText
	periodType := PeriodDuration
	if concept != nil {
		dt = concept.DataType
		periodType = concept.PeriodType
	} else if unit.Canonical != "" {
		dt = DataTypeMonetary
	}
	if ctx.Period.Instant {
		periodType = PeriodInstant
	}

	kind := ValueKindForUnit(dt, unit)
	val := Value{Kind: kind, Text: rf.RawValue}
	if kind == KindMonetary || kind == KindShares || kind == KindRatio || kind == KindPerShare {
		if n, ok := ParseNumericLexical(rf.RawValue); ok {
			val.Number = n * ScaleForDecimals(rf.Decimals)
		} else {
			val.Kind = KindUnknown
		}
	} else if kind == KindDate {
		if t, err := parseEdgarDate(rf.RawValue); err == nil {
			val.Date = t
		}
	}

	dims := make(map[ConceptID]ConceptID, len(ctx.Dimensions))
	for _, d := range ctx.Dimensions {
		dims[d.Axis] = d.Member
	}

	quality := QualityHigh
	if concept == nil {
		quality = QualityMedium
	}
	if unit.Unknown {
		quality = QualityLow
	}

	filingDate, _ := parseEdgarDate(meta.FilingDate)

	return Fact{
		Concept:       rf.Concept,
		Context:       ctx,
		Unit:          unit,
		Value:         val,
		RawValue:      rf.RawValue,
		Decimals:      rf.Decimals,
		PeriodStart:   ctx.Period.Start,
		PeriodEnd:     ctx.Period.End,
		PeriodType:    periodType,
		FilingDate:    filingDate,
		FormType:      meta.FormType,
		Accession:     meta.Accession,
		Dimensions:    dims,
		DataQuality:   quality,
		IsAudited:     meta.FormType == "10-K" || meta.FormType == "10-K/A",
		ConfidenceScore: confidenceFor(quality),
	}
}

func confidenceFor(q DataQuality) float64 {
	switch q {
	case QualityHigh:
		return 1.0
	case QualityMedium:
		return 0.7
	default:
		return 0.4
	}
}

// classifyStatementRoles maps each presentation role to a
// StatementType by keyword-matching the role URI, which conventionally
// embeds a human title ("...StatementOfIncome...",
// "...BalanceSheet...", "...CashFlow..."). This is the same
// substring-heuristic style the teacher uses for statement
// classification (pkg/core/edgar/validation.go).
func classifyStatementRoles(trees map[RoleID]*Tree) map[RoleID]StatementType {
	out := make(map[RoleID]StatementType, len(trees))
	for role := range trees {
		out[role] = classifyRoleURI(string(role))
	}
	return out
}

func classifyRoleURI(uri string) StatementType {
	lower := toLowerASCII(uri)
	switch {
	case containsAny(lower, "incomestatement", "statementsofincome", "operations", "statementofoperations"):
		return StatementIncome
	case containsAny(lower, "balancesheet", "financialposition"):
		return StatementBalance
	case containsAny(lower, "cashflow"):
		return StatementCashFlow
	case containsAny(lower, "stockholdersequity", "shareholdersequity", "equity"):
		return StatementEquity
	case containsAny(lower, "comprehensiveincome"):
		return StatementComprehensive
	default:
		return StatementOther
	}
}

func toLowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if indexOf(s, sub) >= 0 {
			return true
		}
	}
	return false
}

func indexOf(s, sub string) int {
	n, m := len(s), len(sub)
	if m == 0 {
		return 0
	}
	for i := 0; i+m <= n; i++ {
		if s[i:i+m] == sub {
			return i
		}
	}
	return -1
}

// statementForConcept finds which presentation role (if any) places
// this concept, and returns its classified StatementType. A concept
// appearing in several non-Other roles takes the match of whichever
// role the map iteration reaches first; which one that is, is not
// defined, and declaration order is not consulted.
func statementForConcept(c ConceptID, byRole map[RoleID]StatementType, trees map[RoleID]*Tree) StatementType {
	for role, tree := range trees {
		st := byRole[role]
		if st == StatementOther {
			continue
		}
		for _, n := range tree.Nodes {
			if n.Concept == c {
				return st
			}
		}
	}
	return StatementOther
}
