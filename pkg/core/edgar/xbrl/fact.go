package xbrl

import "time"

// DataQuality grades a Fact's reliability (spec.md §3).
type DataQuality string

const (
	QualityHigh   DataQuality = "HIGH"
	QualityMedium DataQuality = "MEDIUM"
	QualityLow    DataQuality = "LOW"
)

// StatementType classifies which financial statement a Fact belongs
// to, inferred from its presentation-tree role.
type StatementType string

const (
	StatementIncome        StatementType = "income"
	StatementBalance       StatementType = "balance"
	StatementCashFlow      StatementType = "cashflow"
	StatementEquity        StatementType = "equity"
	StatementComprehensive StatementType = "comprehensive"
	StatementOther         StatementType = "other"
)

// FactID is an opaque arena index into a FactStore (spec.md §9
// redesign note: arena allocation with integer indices rather than
// pointers, so a frozen store is trivially shareable read-only across
// threads).
type FactID uint32

// Fact is the atomic, immutable record described in spec.md §3. Once
// constructed and added to a FactStore it is never mutated; a
// correction always creates a new Fact (carrying is_restated on the
// superseded one).
type Fact struct {
	ID      FactID
	Concept ConceptID
	Context *Context
	Unit    Unit
	Value   Value

	RawValue     string // raw lexical value, as reported
	Decimals     int    // INFDecimals sentinel for "INF"

	PeriodStart time.Time
	PeriodEnd   time.Time
	PeriodType  PeriodType

	FiscalYear   int
	FiscalPeriod FiscalPeriod

	FilingDate time.Time
	FormType   string
	Accession  string

	StatementType StatementType
	Dimensions    map[ConceptID]ConceptID // axis -> member, empty for default

	DataQuality      DataQuality
	IsAudited        bool
	IsRestated       bool
	IsEstimated      bool
	ConfidenceScore  float64

	SemanticTags []string

	// CalculationContext is non-nil only for derived facts (quarterized,
	// split-adjusted), identifying the method and operand provenance,
	// e.g. "derived_q4_fy_minus_ytd9" or "split_adj_ratio_10.00".
	CalculationContext string
}

// IsDerived reports whether this Fact was produced by the Stitching
// Engine rather than parsed directly from a filing.
func (f *Fact) IsDerived() bool { return f.CalculationContext != "" }

// NumericValue returns the fact's numeric value when its Value tag
// carries one (Monetary/Shares/Ratio/PerShare), and false otherwise.
func (f *Fact) NumericValue() (float64, bool) {
	switch f.Value.Kind {
	case KindMonetary, KindShares, KindRatio, KindPerShare:
		return f.Value.Number, true
	default:
		return 0, false
	}
}

// IsAdditive reports whether this fact may participate in
// subtraction-based derivation, delegating to the package-level
// IsAdditive using the fact's own period type and unit.
func (f *Fact) IsAdditive() bool {
	return IsAdditive(f.PeriodType, f.Unit, nil)
}
