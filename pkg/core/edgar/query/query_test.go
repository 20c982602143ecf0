package query

import (
	"testing"
	"time"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

func buildStore(t *testing.T) *xbrl.FactStore {
	t.Helper()
	store := xbrl.NewFactStore()
	mk := func(concept xbrl.ConceptID, year int, period xbrl.FiscalPeriod, end string, val float64, quality xbrl.DataQuality) {
		e, _ := time.Parse("2006-01-02", end)
		ctx := &xbrl.Context{Entity: "0000320193", Period: xbrl.Period{Instant: true, End: e}}
		f := xbrl.Fact{
			Concept: concept, Context: ctx, Unit: xbrl.ParseUnit("iso4217:USD"),
			Value: xbrl.Value{Kind: xbrl.KindMonetary, Number: val},
			PeriodEnd: e, PeriodType: xbrl.PeriodInstant,
			FiscalYear: year, FiscalPeriod: period, DataQuality: quality, ConfidenceScore: 1,
			FormType: "10-K",
		}
		if _, err := store.Add(f, true); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	mk("us-gaap:Assets", 2022, xbrl.FY, "2022-09-24", 350_000, xbrl.QualityHigh)
	mk("us-gaap:Assets", 2023, xbrl.FY, "2023-09-30", 352_755, xbrl.QualityHigh)
	mk("us-gaap:Liabilities", 2023, xbrl.FY, "2023-09-30", 290_000, xbrl.QualityMedium)
	return store
}

func TestQueryByConceptAndFiscalYear(t *testing.T) {
	store := buildStore(t)
	facts := New(store).ByConcept("us-gaap:Assets").ByFiscalYear(2023).Execute()
	if len(facts) != 1 || facts[0].Value.Number != 352_755 {
		t.Fatalf("facts = %+v", facts)
	}
}

func TestQueryCommutativity(t *testing.T) {
	store := buildStore(t)
	a := New(store).ByConcept("us-gaap:Assets").ByFiscalYear(2023).Execute()
	b := New(store).ByFiscalYear(2023).ByConcept("us-gaap:Assets").Execute()
	if len(a) != len(b) || len(a) != 1 {
		t.Fatalf("expected commutative filters, got %d vs %d", len(a), len(b))
	}
}

func TestQueryHighQualityOnly(t *testing.T) {
	store := buildStore(t)
	facts := New(store).ByFiscalYear(2023).HighQualityOnly().Execute()
	if len(facts) != 1 || facts[0].Concept != "us-gaap:Assets" {
		t.Fatalf("facts = %+v", facts)
	}
}

func TestQueryLatest(t *testing.T) {
	store := buildStore(t)
	facts := New(store).ByConcept("us-gaap:Assets").Latest().Execute()
	if len(facts) != 1 || facts[0].FiscalYear != 2023 {
		t.Fatalf("Latest() = %+v", facts)
	}
}

func TestQueryByLabelSubstring(t *testing.T) {
	store := buildStore(t)
	facts := New(store).ByLabel("liabilit").Execute()
	if len(facts) != 1 || facts[0].Concept != "us-gaap:Liabilities" {
		t.Fatalf("ByLabel facts = %+v", facts)
	}
}

func TestQueryByLabelTokenOverlap(t *testing.T) {
	store := buildStore(t)
	// "Total Liabilities" is not a substring of "Liabilities", but half
	// its words overlap, which the fuzzy matcher's token-overlap scoring
	// should accept.
	facts := New(store).ByLabel("Total Liabilities").Execute()
	if len(facts) != 1 || facts[0].Concept != "us-gaap:Liabilities" {
		t.Fatalf("ByLabel token-overlap facts = %+v", facts)
	}
}

func TestQueryByLabelRejectsLowOverlap(t *testing.T) {
	store := buildStore(t)
	// Only one of four query words overlaps with "Liabilities" - below
	// the fuzzy matcher's 50% threshold, so nothing should match.
	facts := New(store).ByLabel("Total Stockholders Equity Liabilities").Execute()
	if len(facts) != 0 {
		t.Fatalf("ByLabel facts = %+v, want none (overlap below threshold)", facts)
	}
}
