package statement

import (
	"testing"
	"time"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

func mkPeriod(start, end string) xbrl.Period {
	s, _ := time.Parse("2006-01-02", start)
	e, _ := time.Parse("2006-01-02", end)
	return xbrl.Period{Start: s, End: e}
}

func buildTestResult(t *testing.T) *xbrl.LoadResult {
	t.Helper()
	tree := xbrl.NewTree("role:income")
	if err := tree.AddArc("us-gaap:Revenues", "us-gaap:CostOfRevenue", 1, 0, "", nil); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	if err := tree.AddArc("us-gaap:Revenues", "us-gaap:GrossProfit", 2, 0, xbrl.LabelTotal, nil); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	tree.Finalize()

	store := xbrl.NewFactStore()
	ctx := &xbrl.Context{Entity: "0000320193", Period: mkPeriod("2023-01-01", "2023-03-31")}
	revenue := xbrl.Fact{
		Concept: "us-gaap:Revenues", Context: ctx, Unit: xbrl.ParseUnit("iso4217:USD"),
		Value: xbrl.Value{Kind: xbrl.KindMonetary, Number: 1000}, PeriodStart: ctx.Period.Start, PeriodEnd: ctx.Period.End,
		PeriodType: xbrl.PeriodDuration,
	}
	if _, err := store.Add(revenue, false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	store.Freeze()

	return &xbrl.LoadResult{
		Concepts:          map[xbrl.ConceptID]*xbrl.Concept{},
		PresentationTrees: map[xbrl.RoleID]*xbrl.Tree{"role:income": tree},
		CalculationTrees:  map[xbrl.RoleID]*xbrl.Tree{},
		Store:             store,
	}
}

func TestAssemble(t *testing.T) {
	a := NewAssembler(buildTestResult(t))
	stmt, err := a.Assemble("role:income", mkPeriod("2023-01-01", "2023-03-31"))
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(stmt.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(stmt.Items))
	}
	if stmt.Items[0].Concept != "us-gaap:Revenues" {
		t.Errorf("first item = %s, want Revenues", stmt.Items[0].Concept)
	}
	if stmt.Items[0].Fact == nil || stmt.Items[0].Fact.Value.Number != 1000 {
		t.Errorf("Revenues fact not resolved correctly")
	}
	var grossProfit *LineItem
	for i := range stmt.Items {
		if stmt.Items[i].Concept == "us-gaap:GrossProfit" {
			grossProfit = &stmt.Items[i]
		}
	}
	if grossProfit == nil || !grossProfit.IsTotal {
		t.Errorf("GrossProfit should be marked as a total via preferredLabel")
	}
}

func TestAssembleSurfacesDimensionalFactWhenNoDefaultExists(t *testing.T) {
	tree := xbrl.NewTree("role:income")
	if err := tree.AddArc("us-gaap:Revenues", "us-gaap:SegmentRevenue", 1, 0, "", nil); err != nil {
		t.Fatalf("AddArc: %v", err)
	}
	tree.Finalize()

	store := xbrl.NewFactStore()
	period := mkPeriod("2023-01-01", "2023-03-31")
	dimCtx := &xbrl.Context{
		Entity: "0000320193",
		Period: period,
		Dimensions: []xbrl.Dimension{
			{Axis: "us-gaap:StatementBusinessSegmentsAxis", Member: "co:AmericasSegmentMember"},
		},
	}
	segmentFact := xbrl.Fact{
		Concept: "us-gaap:SegmentRevenue", Context: dimCtx, Unit: xbrl.ParseUnit("iso4217:USD"),
		Value: xbrl.Value{Kind: xbrl.KindMonetary, Number: 500}, PeriodStart: period.Start, PeriodEnd: period.End,
		PeriodType: xbrl.PeriodDuration,
	}
	if _, err := store.Add(segmentFact, false); err != nil {
		t.Fatalf("Add: %v", err)
	}
	store.Freeze()

	a := NewAssembler(&xbrl.LoadResult{
		Concepts:          map[xbrl.ConceptID]*xbrl.Concept{},
		PresentationTrees: map[xbrl.RoleID]*xbrl.Tree{"role:income": tree},
		CalculationTrees:  map[xbrl.RoleID]*xbrl.Tree{},
		Store:             store,
	})
	stmt, err := a.Assemble("role:income", period)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	var segItem *LineItem
	for i := range stmt.Items {
		if stmt.Items[i].Concept == "us-gaap:SegmentRevenue" {
			segItem = &stmt.Items[i]
		}
	}
	if segItem == nil {
		t.Fatal("SegmentRevenue line item missing")
	}
	if segItem.Fact == nil || segItem.Fact.Value.Number != 500 {
		t.Fatalf("expected dimensional fact to be surfaced, got %+v", segItem.Fact)
	}
	if segItem.Dimension == nil || segItem.Dimension.Member != "co:AmericasSegmentMember" {
		t.Errorf("Dimension = %+v, want AmericasSegmentMember", segItem.Dimension)
	}
}

func TestAssembleUnknownRole(t *testing.T) {
	a := NewAssembler(buildTestResult(t))
	if _, err := a.Assemble("role:missing", mkPeriod("2023-01-01", "2023-03-31")); err == nil {
		t.Fatalf("expected error for unknown role")
	}
}

func TestSelectPeriodsCurrentPeriod(t *testing.T) {
	a := NewAssembler(buildTestResult(t))
	periods := a.SelectPeriods("role:income", ViewCurrentPeriod)
	if len(periods) != 1 {
		t.Fatalf("len(periods) = %d, want 1", len(periods))
	}
}
