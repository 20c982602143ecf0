package xbrl

import "strings"

// Unit is a canonicalized measure: spec.md §3 "USD, shares, USD/share,
// pure, or a compound like USD * shares." (spec.md §4.1 Unit & Period
// Normalizer).
type Unit struct {
	Canonical string // e.g. "USD", "shares", "USD/share", "pure"
	Raw       string // original measure/divide expression, for provenance
	Unknown   bool   // true when the raw measure could not be canonicalized
}

// currencyCodes is the set of lowercase ISO 4217 currency codes
// ParseUnit recognizes; the canonical form is the uppercase code. The
// namespace prefix (iso4217:) is stripped before lookup.
var currencyCodes = map[string]bool{
	"usd": true, "eur": true, "gbp": true, "jpy": true, "cad": true,
	"aud": true, "chf": true, "cny": true, "hkd": true, "inr": true,
	"krw": true, "sgd": true, "brl": true, "mxn": true,
}

// ParseUnit canonicalizes a raw XBRL unit measure.
// Examples: "iso4217:USD" -> "USD"; "shares" -> "shares";
// "usd-per-shares" -> "USD/share". A numerator/denominator divide
// expression is canonicalized by ParseDivideUnit.
func ParseUnit(measure string) Unit {
	m := stripPrefix(measure)
	lower := strings.ToLower(m)

	if currencyCodes[lower] {
		return Unit{Canonical: strings.ToUpper(m), Raw: measure}
	}
	switch lower {
	case "shares", "share":
		return Unit{Canonical: "shares", Raw: measure}
	case "pure":
		return Unit{Canonical: "pure", Raw: measure}
	case "usd-per-shares", "usdpershares":
		return Unit{Canonical: "USD/share", Raw: measure}
	}
	if m == "" {
		return Unit{Canonical: "", Raw: measure, Unknown: true}
	}
	// Unknown measure: preserve as its own canonical form but flag it so
	// callers can mark facts LOW quality per spec.md §4.1 failure model.
	return Unit{Canonical: m, Raw: measure, Unknown: true}
}

// ParseDivideUnit canonicalizes a compound unit expressed as a
// numerator measure divided by a denominator measure, e.g.
// USD/shares -> "USD/share".
func ParseDivideUnit(numerator, denominator string) Unit {
	num := ParseUnit(numerator)
	den := ParseUnit(denominator)
	singularDen := strings.TrimSuffix(den.Canonical, "s")
	canonical := num.Canonical + "/" + singularDen
	return Unit{
		Canonical: canonical,
		Raw:       numerator + " / " + denominator,
		Unknown:   num.Unknown || den.Unknown,
	}
}

// stripPrefix removes a taxonomy namespace prefix like "iso4217:" or
// "xbrli:" from a measure string.
func stripPrefix(measure string) string {
	if i := strings.IndexByte(measure, ':'); i >= 0 {
		return measure[i+1:]
	}
	return measure
}

// IsShareUnit, IsPerShareUnit, IsRatioUnit classify a canonical unit
// for the additivity check in IsAdditive.
func IsShareUnit(u Unit) bool { return u.Canonical == "shares" }

func IsPerShareUnit(u Unit) bool {
	return strings.HasSuffix(u.Canonical, "/share")
}

func IsRatioUnit(u Unit) bool {
	return u.Canonical == "pure" || u.Canonical == "ratio"
}

// IsAdditive reports whether a fact can participate in subtraction-
// based derivation (spec.md §4.1, used to gate stitching
// quarterization and Q4 derivation). False for instants, for
// shares/per-share/ratio units, and for concepts on the known
// non-additive list (EPS, ratios, averages).
func IsAdditive(periodType PeriodType, unit Unit, concept *Concept) bool {
	if periodType == PeriodInstant {
		return false
	}
	if IsShareUnit(unit) || IsPerShareUnit(unit) || IsRatioUnit(unit) {
		return false
	}
	if concept != nil && concept.IsNonAdditive() {
		return false
	}
	return true
}
