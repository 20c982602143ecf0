package stitch

import (
	"github.com/google/uuid"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// Result bundles the facts produced by one execution of the stitching
// pipeline with an opaque run identifier for provenance tracking —
// distinct from any concept, context, or fact identifier, and useful
// for correlating a stitched multi-period view back to the batch that
// produced it (spec.md §6 "produced outputs"; grounded on the
// teacher's uuid.New().String() run-id pattern in
// pkg/core/debate/manager.go).
type Result struct {
	RunID string
	Facts []xbrl.Fact
}

// Run executes Dedupe, Quarterize and DeriveEPS over facts as a
// single traceable pipeline run (spec.md §4.8: dedupe, quarterize,
// then derive EPS from the resulting Q4 net income and weighted
// shares). DeriveEPS runs after Quarterize so it can see any Q4 net
// income fact that was itself just derived from FY minus YTD9.
func Run(facts []xbrl.Fact) Result {
	deduped := Dedupe(facts)
	quarterized := Quarterize(deduped)
	eps := deriveAnnualEPS(quarterized)
	return Result{RunID: uuid.New().String(), Facts: append(quarterized, eps...)}
}
