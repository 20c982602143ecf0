package statement

import (
	"sort"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// ViewKind selects which set of periods a multi-period statement
// should assemble (spec.md §4.5 period-selection views).
type ViewKind string

const (
	ViewCurrentPeriod      ViewKind = "current_period"
	ViewThreeYearAnnual    ViewKind = "three_year_annual"
	ViewQuarterlyComparison ViewKind = "quarterly_comparison"
	ViewAnnualComparison   ViewKind = "annual_comparison"
	ViewAll                ViewKind = "all"
)

// MultiPeriodStatement is a Statement assembled once per selected
// period, column-aligned by the caller for rendering.
type MultiPeriodStatement struct {
	Role    xbrl.RoleID
	Periods []xbrl.Period
	Columns []*Statement
}

// SelectPeriods inspects every period the Fact Store actually reports
// for a role's concepts and narrows it to the periods a given view
// wants, newest first. This never invents periods: a view asking for
// three annual periods when only two exist in the store returns two.
func (a *Assembler) SelectPeriods(role xbrl.RoleID, view ViewKind) []xbrl.Period {
	tree, ok := a.PresentationTrees[role]
	if !ok {
		return nil
	}
	seen := map[string]xbrl.Period{}
	for _, n := range tree.Nodes {
		for _, f := range a.Store.ByConcept(n.Concept) {
			if f.Context == nil || !f.Context.IsDefault() {
				continue
			}
			seen[f.Context.Period.End.Format("2006-01-02")+string(f.Context.Period.Bucket())] = f.Context.Period
		}
	}
	periods := make([]xbrl.Period, 0, len(seen))
	for _, p := range seen {
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].End.After(periods[j].End) })

	switch view {
	case ViewCurrentPeriod:
		return firstN(filterBucket(periods, xbrl.BucketAnnual, xbrl.BucketQuarter, xbrl.BucketInstant), 1)
	case ViewThreeYearAnnual:
		return firstN(filterBucket(periods, xbrl.BucketAnnual, xbrl.BucketInstant), 3)
	case ViewQuarterlyComparison:
		return firstN(filterBucket(periods, xbrl.BucketQuarter, xbrl.BucketInstant), 2)
	case ViewAnnualComparison:
		return firstN(filterBucket(periods, xbrl.BucketAnnual, xbrl.BucketInstant), 2)
	default:
		return periods
	}
}

func filterBucket(periods []xbrl.Period, buckets ...xbrl.PeriodBucket) []xbrl.Period {
	want := make(map[xbrl.PeriodBucket]bool, len(buckets))
	for _, b := range buckets {
		want[b] = true
	}
	out := make([]xbrl.Period, 0, len(periods))
	for _, p := range periods {
		if want[p.Bucket()] {
			out = append(out, p)
		}
	}
	return out
}

func firstN(periods []xbrl.Period, n int) []xbrl.Period {
	if len(periods) <= n {
		return periods
	}
	return periods[:n]
}

// AssembleView assembles one Statement per period selected by view,
// newest first.
func (a *Assembler) AssembleView(role xbrl.RoleID, view ViewKind) (*MultiPeriodStatement, error) {
	periods := a.SelectPeriods(role, view)
	out := &MultiPeriodStatement{Role: role, Periods: periods}
	for _, p := range periods {
		stmt, err := a.Assemble(role, p)
		if err != nil {
			return nil, err
		}
		out.Columns = append(out.Columns, stmt)
	}
	return out, nil
}
