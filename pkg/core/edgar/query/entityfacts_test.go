package query

import "testing"

const sampleCompanyFacts = `{
  "cik": 320193,
  "entityName": "Apple Inc.",
  "facts": {
    "us-gaap": {
      "Assets": {
        "label": "Assets",
        "units": {
          "USD": [
            {"end": "2022-09-24", "val": 350000000000, "accn": "0000320193-22-000108", "fy": 2022, "fp": "FY", "form": "10-K", "filed": "2022-10-28"},
            {"end": "2023-09-30", "val": 352755000000, "accn": "0000320193-23-000106", "fy": 2023, "fp": "FY", "form": "10-K", "filed": "2023-11-03"}
          ]
        }
      }
    }
  }
}`

func TestIngestCompanyFacts(t *testing.T) {
	ef, err := IngestCompanyFacts([]byte(sampleCompanyFacts))
	if err != nil {
		t.Fatalf("IngestCompanyFacts: %v", err)
	}
	if ef.CIK != 320193 || ef.EntityName != "Apple Inc." {
		t.Errorf("identity mismatch: %+v", ef)
	}
	if ef.Store.Len() != 2 {
		t.Fatalf("Store.Len() = %d, want 2", ef.Store.Len())
	}
	facts := New(ef.Store).ByConcept("us-gaap:Assets").ByFiscalYear(2023).Execute()
	if len(facts) != 1 || facts[0].Value.Number != 352755000000 {
		t.Fatalf("facts = %+v", facts)
	}
}
