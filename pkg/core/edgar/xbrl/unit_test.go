package xbrl

import "testing"

func TestParseUnit(t *testing.T) {
	cases := []struct {
		measure string
		want    string
		unknown bool
	}{
		{"iso4217:USD", "USD", false},
		{"usd", "USD", false},
		{"shares", "shares", false},
		{"pure", "pure", false},
		{"xbrli:pure", "pure", false},
		{"custom:widget", "widget", true},
	}
	for _, tc := range cases {
		got := ParseUnit(tc.measure)
		if got.Canonical != tc.want {
			t.Errorf("ParseUnit(%q).Canonical = %q, want %q", tc.measure, got.Canonical, tc.want)
		}
		if got.Unknown != tc.unknown {
			t.Errorf("ParseUnit(%q).Unknown = %v, want %v", tc.measure, got.Unknown, tc.unknown)
		}
	}
}

func TestParseDivideUnit(t *testing.T) {
	u := ParseDivideUnit("iso4217:USD", "shares")
	if u.Canonical != "USD/share" {
		t.Errorf("Canonical = %q, want USD/share", u.Canonical)
	}
	if !IsPerShareUnit(u) {
		t.Errorf("expected per-share unit")
	}
}

func TestIsAdditive(t *testing.T) {
	usd := ParseUnit("iso4217:USD")
	shares := ParseUnit("shares")
	perShare := ParseDivideUnit("iso4217:USD", "shares")

	if !IsAdditive(PeriodDuration, usd, nil) {
		t.Errorf("USD duration fact should be additive")
	}
	if IsAdditive(PeriodInstant, usd, nil) {
		t.Errorf("instant fact should never be additive")
	}
	if IsAdditive(PeriodDuration, shares, nil) {
		t.Errorf("shares fact should not be additive")
	}
	if IsAdditive(PeriodDuration, perShare, nil) {
		t.Errorf("per-share fact should not be additive")
	}

	eps := &Concept{ID: NewConceptID("us-gaap", "EarningsPerShareBasic")}
	if IsAdditive(PeriodDuration, usd, eps) {
		t.Errorf("concept flagged non-additive should never be additive regardless of unit")
	}
}
