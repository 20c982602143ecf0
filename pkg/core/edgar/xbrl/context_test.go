package xbrl

import "testing"

func TestContextPoolInterning(t *testing.T) {
	pool := NewContextPool()
	c1 := &Context{Entity: "0000320193", Period: Period{Instant: true, End: d("2023-09-30")}}
	c2 := &Context{Entity: "0000320193", Period: Period{Instant: true, End: d("2023-09-30")}}

	canonical1 := pool.Intern("ctx-a", c1)
	canonical2 := pool.Intern("ctx-b", c2)

	if canonical1 != canonical2 {
		t.Errorf("structurally equal contexts should intern to the same instance")
	}
	if pool.Len() != 1 {
		t.Errorf("Len() = %d, want 1", pool.Len())
	}

	got, ok := pool.Lookup("ctx-b")
	if !ok || got != canonical1 {
		t.Errorf("Lookup(ctx-b) did not resolve to the canonical context")
	}
}

func TestContextDimension(t *testing.T) {
	c := &Context{
		Entity: "0000320193",
		Period: Period{Start: d("2023-01-01"), End: d("2023-03-31")},
		Dimensions: []Dimension{
			{Axis: "us-gaap:StatementBusinessSegmentsAxis", Member: "aapl:AmericasSegmentMember"},
		},
	}
	if c.IsDefault() {
		t.Errorf("context with dimensions should not report IsDefault")
	}
	member, ok := c.Dimension("us-gaap:StatementBusinessSegmentsAxis")
	if !ok || member != "aapl:AmericasSegmentMember" {
		t.Errorf("Dimension lookup failed: got (%q, %v)", member, ok)
	}
}
