package stitch

import (
	"fmt"
	"time"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// derivationMethod values populate Fact.CalculationContext so every
// derived fact is traceable back to its operands (spec.md §4.8:
// derived facts must name their method and operand provenance).
const (
	methodQ2           = "derived_q2_ytd6_minus_q1"
	methodQ3           = "derived_q3_ytd9_minus_ytd6"
	methodQ4FYMinusYTD9 = "derived_q4_fy_minus_ytd9"
	methodQ4SumOfQs    = "derived_q4_fy_minus_sum_q1q2q3"
	methodEPS          = "derived_q4_eps_from_ni_and_shares"
)

// derivedEPSConcept is the concept a derived Q4 EPS fact is tagged
// under. It deliberately differs from the NetIncomeLoss concept its
// template fact carries, since the derived value is a per-share
// amount, not net income, and must be addressable in the Fact Store
// and Concept Standardizer under its own concept like any other
// EarningsPerShareBasic fact.
const derivedEPSConcept xbrl.ConceptID = "us-gaap:EarningsPerShareBasic"

// fiscalYearSeries is every fact for one concept within one fiscal
// year, indexed by the bucket its period falls into. Only additive,
// duration facts participate (spec.md §4.1 IsAdditive gates this
// entirely — instants, EPS, and ratios are never quarterized).
type fiscalYearSeries struct {
	Q1, YTD6, YTD9, FY *xbrl.Fact
}

// Quarterize derives Q2, Q3, and Q4 facts for every additive concept
// and fiscal year present in facts where the filer only reported
// year-to-date or annual cumulative values (spec.md §4.8
// quarterization: "Q2 = YTD6M - Q1", "Q3 = YTD9M - YTD6M",
// "Q4 = FY - YTD9M preferred, else FY - (Q1+Q2+Q3)"). Facts that are
// not additive, or whose fiscal year is missing a needed operand, are
// left alone; Quarterize never overwrites a Q2/Q3/Q4 fact the filer
// already reported directly.
func Quarterize(facts []xbrl.Fact) []xbrl.Fact {
	out := make([]xbrl.Fact, len(facts))
	copy(out, facts)

	type seriesKey struct {
		concept xbrl.ConceptID
		year    int
	}
	series := make(map[seriesKey]*fiscalYearSeries)
	haveDirect := make(map[seriesKey]map[xbrl.FiscalPeriod]bool)

	for i := range out {
		f := &out[i]
		if !f.IsAdditive() || f.FiscalYear == 0 {
			continue
		}
		k := seriesKey{concept: f.Concept, year: f.FiscalYear}
		if haveDirect[k] == nil {
			haveDirect[k] = make(map[xbrl.FiscalPeriod]bool)
		}
		haveDirect[k][f.FiscalPeriod] = true

		s := series[k]
		if s == nil {
			s = &fiscalYearSeries{}
			series[k] = s
		}
		switch f.FiscalPeriod {
		case xbrl.Q1:
			s.Q1 = f
		case xbrl.FY:
			s.FY = f
		}
		switch f.Context.Period.Bucket() {
		case xbrl.BucketYTD6M:
			s.YTD6 = f
		case xbrl.BucketYTD9M:
			s.YTD9 = f
		}
	}

	var derived []xbrl.Fact
	for k, s := range series {
		direct := haveDirect[k]
		if q2 := deriveQ2(s, direct); q2 != nil {
			derived = append(derived, *q2)
		}
		if q3 := deriveQ3(s, direct); q3 != nil {
			derived = append(derived, *q3)
		}
		if q4 := deriveQ4(s, derived, direct); q4 != nil {
			derived = append(derived, *q4)
		}
	}
	return append(out, derived...)
}

func deriveQ2(s *fiscalYearSeries, direct map[xbrl.FiscalPeriod]bool) *xbrl.Fact {
	if direct[xbrl.Q2] || s.Q1 == nil || s.YTD6 == nil {
		return nil
	}
	f := deriveFromDifference(*s.YTD6, *s.Q1, xbrl.Q2, methodQ2)
	return &f
}

func deriveQ3(s *fiscalYearSeries, direct map[xbrl.FiscalPeriod]bool) *xbrl.Fact {
	if direct[xbrl.Q3] || s.YTD9 == nil || s.YTD6 == nil {
		return nil
	}
	f := deriveFromDifference(*s.YTD9, *s.YTD6, xbrl.Q3, methodQ3)
	return &f
}

func deriveQ4(s *fiscalYearSeries, derivedSoFar []xbrl.Fact, direct map[xbrl.FiscalPeriod]bool) *xbrl.Fact {
	if direct[xbrl.Q4] || s.FY == nil {
		return nil
	}
	if s.YTD9 != nil {
		f := deriveFromDifference(*s.FY, *s.YTD9, xbrl.Q4, methodQ4FYMinusYTD9)
		return &f
	}
	// Fallback: FY - (Q1+Q2+Q3), only if all three are available either
	// as direct facts or as just-derived ones for this same concept/year.
	var q1, q2, q3 *xbrl.Fact
	if s.Q1 != nil {
		q1 = s.Q1
	}
	for i := range derivedSoFar {
		d := &derivedSoFar[i]
		if d.Concept != s.FY.Concept || d.FiscalYear != s.FY.FiscalYear {
			continue
		}
		switch d.FiscalPeriod {
		case xbrl.Q2:
			q2 = d
		case xbrl.Q3:
			q3 = d
		}
	}
	if q1 == nil || q2 == nil || q3 == nil {
		return nil
	}
	sumVal := q1.Value.Number + q2.Value.Number + q3.Value.Number
	fyVal, ok := s.FY.NumericValue()
	if !ok {
		return nil
	}
	derived := *s.FY
	derived.Value = xbrl.Value{Kind: s.FY.Value.Kind, Number: fyVal - sumVal}
	derived.FiscalPeriod = xbrl.Q4
	derived.CalculationContext = methodQ4SumOfQs
	derived.PeriodStart, derived.PeriodEnd = quarterWindowFromFY(*s.FY, *q3)
	return &derived
}

// deriveFromDifference builds a new Fact equal to (minuend - subtrahend)
// over the implied sub-period, carrying the minuend's filing metadata
// forward since it is always the more recent of the two filings.
func deriveFromDifference(minuend, subtrahend xbrl.Fact, period xbrl.FiscalPeriod, method string) xbrl.Fact {
	mv, _ := minuend.NumericValue()
	sv, _ := subtrahend.NumericValue()
	derived := minuend
	derived.Value = xbrl.Value{Kind: minuend.Value.Kind, Number: mv - sv}
	derived.FiscalPeriod = period
	derived.CalculationContext = method
	derived.PeriodStart = subtrahend.PeriodEnd.AddDate(0, 0, 1)
	derived.PeriodEnd = minuend.PeriodEnd
	derived.RawValue = fmt.Sprintf("%v", derived.Value.Number)
	derived.IsEstimated = true
	return derived
}

func quarterWindowFromFY(fy, q3 xbrl.Fact) (time.Time, time.Time) {
	return q3.PeriodEnd.AddDate(0, 0, 1), fy.PeriodEnd
}

// DeriveEPS computes a Q4 EPS fact from Q4 net income and Q4 weighted
// average shares outstanding, where Q4 shares are themselves derived
// as 4*FY_WeightedAverageShares - 3*YTD9_WeightedAverageShares
// (spec.md §4.8: "derived EPS (Q4 net income / Q4 weighted shares,
// where Q4 shares = 4*FY_WAS - 3*YTD9_WAS)"). Returns nil if any
// operand is missing.
func DeriveEPS(q4NetIncome, fyWeightedShares, ytd9WeightedShares *xbrl.Fact) *xbrl.Fact {
	if q4NetIncome == nil || fyWeightedShares == nil || ytd9WeightedShares == nil {
		return nil
	}
	ni, ok := q4NetIncome.NumericValue()
	if !ok {
		return nil
	}
	fyShares, ok := fyWeightedShares.NumericValue()
	if !ok {
		return nil
	}
	ytd9Shares, ok := ytd9WeightedShares.NumericValue()
	if !ok {
		return nil
	}
	q4Shares := 4*fyShares - 3*ytd9Shares
	if q4Shares == 0 {
		return nil
	}
	derived := *q4NetIncome
	derived.Concept = derivedEPSConcept
	derived.Value = xbrl.Value{Kind: xbrl.KindPerShare, Number: ni / q4Shares}
	derived.Unit = xbrl.ParseDivideUnit("iso4217:USD", "shares")
	derived.FiscalPeriod = xbrl.Q4
	derived.CalculationContext = methodEPS
	derived.IsEstimated = true
	derived.RawValue = fmt.Sprintf("%v", derived.Value.Number)
	return &derived
}

// deriveAnnualEPS finds every (entity, fiscal year) group in facts
// that has a Q4 net income fact, an FY weighted-average-shares fact,
// and a YTD9 weighted-average-shares fact, and returns the Q4 EPS
// fact DeriveEPS computes for each. Groups missing any operand are
// skipped; a group whose Q4 EPS is already reported directly is left
// alone rather than overwritten.
func deriveAnnualEPS(facts []xbrl.Fact) []xbrl.Fact {
	const (
		netIncomeConcept xbrl.ConceptID = "us-gaap:NetIncomeLoss"
		sharesConcept    xbrl.ConceptID = "us-gaap:WeightedAverageNumberOfSharesOutstandingBasic"
	)

	type epsGroupKey struct {
		entity string
		year   int
	}
	haveDirectEPS := make(map[epsGroupKey]bool)
	q4NI := make(map[epsGroupKey]*xbrl.Fact)
	fyShares := make(map[epsGroupKey]*xbrl.Fact)
	ytd9Shares := make(map[epsGroupKey]*xbrl.Fact)

	for i := range facts {
		f := &facts[i]
		if f.Context == nil || f.FiscalYear == 0 {
			continue
		}
		k := epsGroupKey{entity: f.Context.Entity, year: f.FiscalYear}

		if f.Concept == derivedEPSConcept && f.FiscalPeriod == xbrl.Q4 && !f.IsDerived() {
			haveDirectEPS[k] = true
		}
		if f.Concept == netIncomeConcept && f.FiscalPeriod == xbrl.Q4 {
			q4NI[k] = f
		}
		if f.Concept == sharesConcept && f.FiscalPeriod == xbrl.FY && f.Context.Period.Bucket() == xbrl.BucketAnnual {
			fyShares[k] = f
		}
		if f.Concept == sharesConcept && f.Context.Period.Bucket() == xbrl.BucketYTD9M {
			ytd9Shares[k] = f
		}
	}

	var derived []xbrl.Fact
	for k, ni := range q4NI {
		if haveDirectEPS[k] {
			continue
		}
		fy, ytd9 := fyShares[k], ytd9Shares[k]
		if eps := DeriveEPS(ni, fy, ytd9); eps != nil {
			derived = append(derived, *eps)
		}
	}
	return derived
}
