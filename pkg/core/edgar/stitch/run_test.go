package stitch

import (
	"testing"
	"time"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

func TestRunProducesStableRunIDAndDedupedFacts(t *testing.T) {
	older := xbrl.Fact{
		Concept: "us-gaap:Revenues",
		Context: &xbrl.Context{Entity: "0000320193", Period: xbrl.Period{
			Start: mustDate("2023-01-01"), End: mustDate("2023-03-31"),
		}},
		Value:       xbrl.Value{Kind: xbrl.KindMonetary, Number: 100},
		PeriodStart: mustDate("2023-01-01"), PeriodEnd: mustDate("2023-03-31"),
		FilingDate: mustDate("2023-04-01"),
	}
	newer := older
	newer.Value.Number = 105
	newer.FilingDate = mustDate("2023-05-01")

	result := Run([]xbrl.Fact{older, newer})
	if result.RunID == "" {
		t.Error("expected a non-empty RunID")
	}
	if len(result.Facts) != 1 {
		t.Fatalf("len(Facts) = %d, want 1 after dedupe", len(result.Facts))
	}
	if result.Facts[0].Value.Number != 105 {
		t.Errorf("expected the later filing's value to win, got %v", result.Facts[0].Value.Number)
	}

	other := Run([]xbrl.Fact{older, newer})
	if other.RunID == result.RunID {
		t.Error("expected distinct RunIDs across separate Run calls")
	}
}

func TestRunDerivesQ4EPS(t *testing.T) {
	ctx := func(start, end string) *xbrl.Context {
		return &xbrl.Context{Entity: "0000320193", Period: xbrl.Period{Start: mustDate(start), End: mustDate(end)}}
	}
	q4NI := xbrl.Fact{
		Concept: "us-gaap:NetIncomeLoss", Context: ctx("2023-10-01", "2023-12-31"),
		Value:       xbrl.Value{Kind: xbrl.KindMonetary, Number: 1000},
		PeriodStart: mustDate("2023-10-01"), PeriodEnd: mustDate("2023-12-31"),
		FiscalYear: 2023, FiscalPeriod: xbrl.Q4, FilingDate: mustDate("2024-02-01"),
		CalculationContext: "derived_q4_fy_minus_ytd9",
	}
	fyShares := xbrl.Fact{
		Concept: "us-gaap:WeightedAverageNumberOfSharesOutstandingBasic", Context: ctx("2023-01-01", "2023-12-31"),
		Value:       xbrl.Value{Kind: xbrl.KindShares, Number: 400},
		PeriodStart: mustDate("2023-01-01"), PeriodEnd: mustDate("2023-12-31"),
		FiscalYear: 2023, FiscalPeriod: xbrl.FY, FilingDate: mustDate("2024-02-01"),
	}
	ytd9Shares := xbrl.Fact{
		Concept: "us-gaap:WeightedAverageNumberOfSharesOutstandingBasic", Context: ctx("2023-01-01", "2023-09-30"),
		Value:       xbrl.Value{Kind: xbrl.KindShares, Number: 390},
		PeriodStart: mustDate("2023-01-01"), PeriodEnd: mustDate("2023-09-30"),
		FiscalYear: 2023, FiscalPeriod: xbrl.FY, FilingDate: mustDate("2023-11-01"),
	}

	result := Run([]xbrl.Fact{q4NI, fyShares, ytd9Shares})

	var eps *xbrl.Fact
	for i := range result.Facts {
		f := &result.Facts[i]
		if f.Concept == "us-gaap:EarningsPerShareBasic" && f.FiscalPeriod == xbrl.Q4 {
			eps = f
		}
	}
	if eps == nil {
		t.Fatalf("Run did not produce a derived Q4 EPS fact; Facts = %+v", result.Facts)
	}
	// Q4 shares = 4*400 - 3*390 = 430; EPS = 1000/430
	wantEPS := 1000.0 / 430.0
	if eps.Value.Number < wantEPS-1e-9 || eps.Value.Number > wantEPS+1e-9 {
		t.Errorf("EPS = %v, want %v", eps.Value.Number, wantEPS)
	}
}

func mustDate(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}
