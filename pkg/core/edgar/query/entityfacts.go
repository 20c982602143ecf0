package query

import (
	"fmt"
	"time"

	goccy "github.com/goccy/go-json"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/xbrl"
)

// companyFactsDoc mirrors the SEC "Company Facts" API response shape
// (https://data.sec.gov/api/xbrl/companyfacts/CIK##########.json).
// Bulk EntityFacts downloads run tens of thousands of (concept,unit)
// series per large filer, which is why this ingestion path uses
// goccy/go-json rather than encoding/json (spec.md DOMAIN STACK: fast
// JSON for bulk Entity Facts ingestion).
type companyFactsDoc struct {
	CIK        int                            `json:"cik"`
	EntityName string                         `json:"entityName"`
	Facts      map[string]map[string]conceptFacts `json:"facts"`
}

type conceptFacts struct {
	Label string                    `json:"label"`
	Units map[string][]unitFactItem `json:"units"`
}

type unitFactItem struct {
	Start   string  `json:"start"`
	End     string  `json:"end"`
	Val     float64 `json:"val"`
	Accn    string  `json:"accn"`
	FY      int     `json:"fy"`
	FP      string  `json:"fp"`
	Form    string  `json:"form"`
	Filed   string  `json:"filed"`
	Frame   string  `json:"frame"`
}

// EntityFacts is the ingested result: entity identity plus a FactStore
// populated with allowDuplicates=true, since the same (concept,
// period) legitimately recurs across many filings' comparative
// columns before the Stitching Engine deduplicates them.
type EntityFacts struct {
	CIK        int
	EntityName string
	Store      *xbrl.FactStore
}

// IngestCompanyFacts parses a raw Company Facts API JSON payload into
// an EntityFacts, synthesizing one Context per distinct (start, end)
// window it encounters — the API flattens context/dimension
// information away, so every ingested fact is necessarily a
// entity-default-context fact (spec.md §4.7 degradation: dimensional
// detail is unavailable from this source and is never fabricated).
func IngestCompanyFacts(data []byte) (*EntityFacts, error) {
	var doc companyFactsDoc
	if err := goccy.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("query: parsing company facts json: %w", err)
	}

	store := xbrl.NewFactStore()
	pool := xbrl.NewContextPool()
	entity := fmt.Sprintf("%010d", doc.CIK)

	for taxonomy, concepts := range doc.Facts {
		for localName, cf := range concepts {
			concept := xbrl.NewConceptID(taxonomy, localName)
			for unitMeasure, items := range cf.Units {
				unit := xbrl.ParseUnit(unitMeasure)
				for _, item := range items {
					f, err := buildEntityFact(concept, unit, item, entity, pool)
					if err != nil {
						continue
					}
					if _, err := store.Add(f, true); err != nil {
						continue
					}
				}
			}
		}
	}
	store.Freeze()

	return &EntityFacts{CIK: doc.CIK, EntityName: doc.EntityName, Store: store}, nil
}

func buildEntityFact(concept xbrl.ConceptID, unit xbrl.Unit, item unitFactItem, entity string, pool *xbrl.ContextPool) (xbrl.Fact, error) {
	end, err := parseDate(item.End)
	if err != nil {
		return xbrl.Fact{}, err
	}
	period := xbrl.Period{Instant: item.Start == "", End: end}
	contextKey := entity + "|" + item.Start + "|" + item.End
	if item.Start != "" {
		start, err := parseDate(item.Start)
		if err != nil {
			return xbrl.Fact{}, err
		}
		period.Start = start
	}
	ctx := pool.Intern(xbrl.ContextID(contextKey), &xbrl.Context{Entity: entity, Period: period})

	periodType := xbrl.PeriodDuration
	if period.Instant {
		periodType = xbrl.PeriodInstant
	}
	filed, _ := parseDate(item.Filed)

	kind := xbrl.ValueKindForUnit(xbrl.DataTypeMonetary, unit)
	if unit.Canonical == "shares" {
		kind = xbrl.KindShares
	}

	return xbrl.Fact{
		Concept:       concept,
		Context:       ctx,
		Unit:          unit,
		Value:         xbrl.Value{Kind: kind, Number: item.Val},
		RawValue:      fmt.Sprintf("%v", item.Val),
		Decimals:      xbrl.INFDecimals,
		PeriodStart:   period.Start,
		PeriodEnd:     period.End,
		PeriodType:    periodType,
		FiscalYear:    item.FY,
		FiscalPeriod:  xbrl.FiscalPeriod(item.FP),
		FilingDate:    filed,
		FormType:      item.Form,
		Accession:     item.Accn,
		DataQuality:   xbrl.QualityMedium, // Company Facts API omits dimensional/context precision
		ConfidenceScore: 0.7,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}
