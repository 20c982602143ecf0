package stitch

import (
	"fmt"
	"sort"
	"time"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// splitConceptLocal is the XBRL concept local name filers use to
// report a stock split's conversion ratio (spec.md §4.9: "detects
// StockSplitConversionRatio facts").
const splitConceptLocal = "StockholdersEquityNoteStockSplitConversionRatio"

// detectMaxFilingLagDays and detectMaxDurationDays bound which
// StockSplitConversionRatio facts DetectSplits treats as genuine split
// events (spec.md §4.9 detect gating): the ratio must be reported
// close to when it took effect, not as a stray restatement of a long
// since past period, and over an instant or a short window rather
// than some unrelated multi-quarter duration that happens to share the
// concept name.
const (
	detectMaxFilingLagDays = 280
	detectMaxDurationDays  = 31
)

// Split is one detected stock split event.
type Split struct {
	Date  string // the fact's PeriodEnd / effective date, YYYY-MM-DD
	Ratio float64
}

// DetectSplits scans facts for StockSplitConversionRatio reports and
// returns every split event found, sorted oldest first. A ratio of 2
// means a 2-for-1 split; a ratio of 0.5 would mean a 1-for-2 reverse
// split (still "forward" in the adjustment arithmetic sense: always
// multiply shares, divide per-share amounts, by the cumulative
// ratio).
//
// A candidate fact is accepted only if it passes the spec's detect
// gates: it must be an instant, or a duration no longer than
// detectMaxDurationDays (an XBRL fact sharing the split concept's name
// but covering some unrelated multi-month span is not a split report);
// its filing must not lag the period it describes by more than
// detectMaxFilingLagDays (a stale restatement years after the fact is
// not treated as a new split); and the same (year, ratio) pair is
// never recorded twice, so duplicate facts from overlapping filings
// don't produce duplicate split events.
func DetectSplits(facts []xbrl.Fact) []Split {
	var splits []Split
	seen := make(map[string]bool)
	for _, f := range facts {
		if f.Concept.LocalName() != splitConceptLocal {
			continue
		}
		ratio, ok := f.NumericValue()
		if !ok || ratio <= 0 {
			continue
		}
		if f.PeriodEnd.IsZero() || f.FilingDate.IsZero() {
			continue
		}
		if f.PeriodType != xbrl.PeriodInstant {
			if days := f.PeriodEnd.Sub(f.PeriodStart).Hours() / 24; days > detectMaxDurationDays {
				continue
			}
		}
		if lag := f.FilingDate.Sub(f.PeriodEnd).Hours() / 24; lag > detectMaxFilingLagDays {
			continue
		}

		key := fmt.Sprintf("%d|%g", f.PeriodEnd.Year(), ratio)
		if seen[key] {
			continue
		}
		seen[key] = true
		splits = append(splits, Split{Date: f.PeriodEnd.Format("2006-01-02"), Ratio: ratio})
	}
	sort.Slice(splits, func(i, j int) bool { return splits[i].Date < splits[j].Date })
	return splits
}

// CumulativeForwardRatio returns the product of every split's ratio
// that both (a) took effect after periodEnd, the multiplier needed to
// restate a pre-split value as of today (spec.md §4.9: "computes
// cumulative forward ratio"), and (b) the fact being adjusted is
// eligible for: filingDate is the zero value (unknown filing date) or
// on/before that split's effective date. A later filing that already
// restates a pre-split historical period carries its own post-split
// filing date past the split, so it is excluded here and left
// unadjusted rather than double-adjusted (spec.md §4.9: "filing_date
// is null OR filing_date <= split_date").
func CumulativeForwardRatio(splits []Split, periodEnd string, filingDate time.Time) float64 {
	ratio := 1.0
	for _, s := range splits {
		if s.Date <= periodEnd {
			continue
		}
		if !filingDate.IsZero() && filingDate.Format("2006-01-02") > s.Date {
			continue
		}
		ratio *= s.Ratio
	}
	return ratio
}

// AdjustForSplits rewrites every per-share and share-count fact dated
// before each split's effective date, dividing per-share amounts and
// multiplying share counts by that split's forward ratio (spec.md
// §4.9: "adjusts per-share (divide) and share-count (multiply) facts
// filed before the split for periods before the split date"). Facts
// on or after a split's date, facts whose own filing date is already
// past the split's date, and all non-share/non-per-share facts, pass
// through unchanged. The input slice is not mutated.
func AdjustForSplits(facts []xbrl.Fact, splits []Split) []xbrl.Fact {
	if len(splits) == 0 {
		return facts
	}
	out := make([]xbrl.Fact, len(facts))
	copy(out, facts)

	for i := range out {
		f := &out[i]
		periodEnd := f.PeriodEnd.Format("2006-01-02")
		ratio := CumulativeForwardRatio(splits, periodEnd, f.FilingDate)
		if ratio == 1 {
			continue
		}
		switch f.Value.Kind {
		case xbrl.KindPerShare:
			f.Value.Number /= ratio
			f.CalculationContext = splitAdjustmentContext(ratio)
		case xbrl.KindShares:
			f.Value.Number *= ratio
			f.CalculationContext = splitAdjustmentContext(ratio)
		}
	}
	return out
}

func splitAdjustmentContext(ratio float64) string {
	return fmt.Sprintf("split_adj_ratio_%.2f", ratio)
}
