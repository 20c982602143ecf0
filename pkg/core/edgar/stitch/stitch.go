// Package stitch implements the Stitching Engine (spec.md §4.8) and
// the Stock Split Detector & Adjuster (spec.md §4.9): deduplicating
// facts seen across overlapping filings, deriving Q2/Q3/Q4 values and
// Q4 EPS the filer never reported directly, and retrospectively
// adjusting per-share/share-count facts for splits.
package stitch

import (
	"sort"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// conceptPeriodKey identifies one (concept, period, dimension) series
// across many filings' facts.
type conceptPeriodKey struct {
	concept   xbrl.ConceptID
	start     string
	end       string
	dimension string
}

func keyFor(f xbrl.Fact) conceptPeriodKey {
	dim := ""
	for axis, member := range f.Dimensions {
		dim += string(axis) + "=" + string(member) + ";"
	}
	return conceptPeriodKey{
		concept:   f.Concept,
		start:     f.PeriodStart.Format("2006-01-02"),
		end:       f.PeriodEnd.Format("2006-01-02"),
		dimension: dim,
	}
}

// Dedupe groups facts by (concept, period, dimensions) and returns one
// fact per group: the one with the latest FilingDate. The other members
// of a group are not returned, so the result carries no superseded
// facts and none of its facts is marked IsRestated by Dedupe. The
// input facts are not mutated; Dedupe returns a new slice.
func Dedupe(facts []xbrl.Fact) []xbrl.Fact {
	groups := make(map[conceptPeriodKey][]int)
	out := make([]xbrl.Fact, len(facts))
	copy(out, facts)

	for i, f := range out {
		k := keyFor(f)
		groups[k] = append(groups[k], i)
	}

	var winners []xbrl.Fact
	for _, idxs := range groups {
		sort.Slice(idxs, func(a, b int) bool {
			return out[idxs[a]].FilingDate.After(out[idxs[b]].FilingDate)
		})
		for i, idx := range idxs {
			if i > 0 {
				out[idx].IsRestated = true
			}
		}
		winners = append(winners, out[idxs[0]])
	}
	return winners
}
