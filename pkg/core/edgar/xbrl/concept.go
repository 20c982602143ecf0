// Package xbrl implements the Unit & Period Normalizer, the XBRL
// Linkbase Loader, and the Fact Store (spec.md §4.1, §4.3, §4.4). It
// owns the data model from spec.md §3: Concept, Context, Unit, Fact,
// and the presentation/calculation/definition trees.
package xbrl

import "strings"

// DataType is the XBRL data type of a Concept.
type DataType string

const (
	DataTypeMonetary DataType = "monetary"
	DataTypeShares   DataType = "shares"
	DataTypePerShare DataType = "per-share"
	DataTypeRatio    DataType = "ratio"
	DataTypeDate     DataType = "date"
	DataTypeText     DataType = "text"
)

// PeriodType is whether a Concept is reported at an instant or over a
// duration.
type PeriodType string

const (
	PeriodInstant  PeriodType = "instant"
	PeriodDuration PeriodType = "duration"
)

// Balance is the normal debit/credit balance of a Concept, used by the
// calculation tree (read for structure only, never enforced).
type Balance string

const (
	BalanceDebit  Balance = "debit"
	BalanceCredit Balance = "credit"
	BalanceNone   Balance = "none"
)

// LabelRole selects among the standard XBRL label roles.
type LabelRole string

const (
	LabelStandard      LabelRole = "standard"
	LabelTerse         LabelRole = "terse"
	LabelVerbose       LabelRole = "verbose"
	LabelNegated       LabelRole = "negated"
	LabelDocumentation LabelRole = "documentation"
	LabelTotal         LabelRole = "total"
)

// ConceptID identifies a taxonomy element by its (namespace, local
// name) pair, e.g. "us-gaap:Assets".
type ConceptID string

// NewConceptID builds a ConceptID from a namespace prefix and local
// name, e.g. NewConceptID("us-gaap", "Assets") -> "us-gaap:Assets".
func NewConceptID(namespace, local string) ConceptID {
	return ConceptID(namespace + ":" + local)
}

// Namespace returns the prefix portion of the ConceptID.
func (c ConceptID) Namespace() string {
	if i := strings.IndexByte(string(c), ':'); i >= 0 {
		return string(c)[:i]
	}
	return ""
}

// LocalName returns the local-name portion of the ConceptID.
func (c ConceptID) LocalName() string {
	if i := strings.IndexByte(string(c), ':'); i >= 0 {
		return string(c)[i+1:]
	}
	return string(c)
}

// Concept is a taxonomy element: spec.md §3 "A taxonomy element
// identified by (namespace, local name) pair."
type Concept struct {
	ID                ConceptID
	DataType          DataType
	PeriodType        PeriodType
	Balance           Balance
	SubstitutionGroup string
	Abstract          bool

	// Labels is keyed by (role, language); language defaults to "en".
	Labels map[LabelKey]string
}

// LabelKey is the (role, language) key into Concept.Labels.
type LabelKey struct {
	Role LabelRole
	Lang string
}

// Label resolves a label for the given role, falling back to the
// standard label, then to a pretty-printed local name when the label
// linkbase was absent or incomplete (spec.md §4.3 degradation: "absent
// labels default to localName-pretty-printed").
func (c *Concept) Label(role LabelRole, lang string) string {
	if lang == "" {
		lang = "en"
	}
	if c.Labels != nil {
		if v, ok := c.Labels[LabelKey{Role: role, Lang: lang}]; ok && v != "" {
			return v
		}
		if v, ok := c.Labels[LabelKey{Role: LabelStandard, Lang: lang}]; ok && v != "" {
			return v
		}
	}
	return prettyPrintLocalName(c.ID.LocalName())
}

// prettyPrintLocalName turns "AccountsReceivableNetCurrent" into
// "Accounts Receivable Net Current" by splitting on case transitions.
func prettyPrintLocalName(local string) string {
	if local == "" {
		return local
	}
	var b strings.Builder
	runes := []rune(local)
	for i, r := range runes {
		if i > 0 {
			prevLower := isLower(runes[i-1])
			curUpper := isUpper(r)
			nextLower := i+1 < len(runes) && isLower(runes[i+1])
			if curUpper && (prevLower || (isUpper(runes[i-1]) && nextLower)) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isLower(r rune) bool { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool { return r >= 'A' && r <= 'Z' }

// IsNonAdditive reports whether a concept is structurally non-additive
// regardless of period/unit — EPS, ratios, and weighted averages. Used
// by Unit&Period Normalizer's IsAdditive alongside the unit/period
// checks.
func (c *Concept) IsNonAdditive() bool {
	local := strings.ToLower(c.ID.LocalName())
	for _, marker := range nonAdditiveMarkers {
		if strings.Contains(local, marker) {
			return true
		}
	}
	return false
}

var nonAdditiveMarkers = []string{
	"persharevalue", "earningspershare", "pershare", "weightedaverage",
	"ratio", "percentage", "rate",
}
