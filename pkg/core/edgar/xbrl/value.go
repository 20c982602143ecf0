package xbrl

import (
	"strconv"
	"strings"
	"time"
)

// ValueKind tags a Value's underlying representation. This realizes
// the §9 redesign flag "Dynamic typing of facts": the source treated
// value as an untyped field and lazily computed numeric_value; here
// the Unit Normalizer decides the tag at parse time and the tag never
// changes afterward.
type ValueKind int

const (
	KindUnknown ValueKind = iota
	KindMonetary
	KindShares
	KindRatio
	KindPerShare
	KindDate
	KindText
)

// Value is the tagged variant for a Fact's parsed value.
type Value struct {
	Kind   ValueKind
	Number float64   // valid when Kind is Monetary/Shares/Ratio/PerShare
	Date   time.Time // valid when Kind is Date
	Text   string    // valid when Kind is Text, and always holds the raw lexical form
}

// ValueKindForUnit decides the tag for a value given its canonical
// unit and data type, per the §9 redesign note.
func ValueKindForUnit(dt DataType, u Unit) ValueKind {
	switch {
	case dt == DataTypeDate:
		return KindDate
	case dt == DataTypeText:
		return KindText
	case IsPerShareUnit(u):
		return KindPerShare
	case IsShareUnit(u):
		return KindShares
	case IsRatioUnit(u):
		return KindRatio
	case u.Canonical != "" && !u.Unknown:
		return KindMonetary
	default:
		return KindUnknown
	}
}

// ParseNumericLexical converts an XBRL/HTML lexical numeric string
// (e.g. "10,000", "(5,000)", "-", "N/A", "$1,234.56") to a float64.
// It applies no decimals scaling; callers multiply by
// ScaleForDecimals. Grounded on the
// teacher's parseNumericValueFromString/DetectScaleFactor heuristics,
// generalized to the canonical Fact Store's decimals semantics.
func ParseNumericLexical(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "-" || s == "—" || s == "N/A" || s == "n/a" {
		return 0, false
	}
	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}
	s = strings.NewReplacer(",", "", "$", "", "%", "", " ", "").Replace(s)
	if s == "" || s == "-" {
		return 0, false
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative // a literal leading minus combined with parens would be unusual but stays consistent
		s = strings.TrimPrefix(s, "-")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// ScaleForDecimals returns the multiplier implied by an XBRL decimals
// attribute: -3 means the lexical value is in thousands, -6 millions,
// and so on. decimals == INFDecimals means exact (no scaling).
func ScaleForDecimals(decimals int) float64 {
	if decimals >= 0 {
		return 1
	}
	scale := 1.0
	for i := 0; i < -decimals; i++ {
		scale *= 10
	}
	return scale
}

// INFDecimals is the sentinel for an XBRL "INF" decimals attribute
// (spec.md §3 Fact.decimals: "integer or the sentinel INF").
const INFDecimals = 1 << 30

// ParseDecimals parses an XBRL decimals attribute string, mapping the
// literal "INF" to INFDecimals.
func ParseDecimals(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "INF") {
		return INFDecimals
	}
	d, err := strconv.Atoi(raw)
	if err != nil {
		return INFDecimals
	}
	return d
}

// DetectScaleFactor inspects surrounding text (a table header or
// statement caption) for a unit multiplier, e.g. "(in millions)".
// Grounded on the teacher's go_extractor_units.go.
func DetectScaleFactor(text string) (float64, string) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "billion"):
		return 1_000_000_000, "billions"
	case strings.Contains(lower, "million"):
		return 1_000_000, "millions"
	case strings.Contains(lower, "thousand") || strings.Contains(lower, "000s"):
		return 1_000, "thousands"
	default:
		return 1, ""
	}
}
