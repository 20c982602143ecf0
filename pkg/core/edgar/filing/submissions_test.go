package filing

import (
	"context"
	"testing"
	"time"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/fetch"
)

type stubFetcher struct {
	responses map[string]string
}

func (s *stubFetcher) Fetch(ctx context.Context, url string, etag string) ([]byte, string, fetch.CacheHints, error) {
	return []byte(s.responses[url]), "", fetch.CacheHints{}, nil
}

const sampleSubmissionsJSON = `{
	"cik": 320193,
	"name": "Apple Inc.",
	"tickers": ["AAPL"],
	"sic": "3571",
	"filings": {
		"recent": {
			"accessionNumber": ["0000320193-23-000106", "0000320193-23-000077"],
			"filingDate": ["2023-11-03", "2023-08-04"],
			"reportDate": ["2023-09-30", "2023-07-01"],
			"form": ["10-K", "10-Q"],
			"primaryDocument": ["aapl-20230930.htm", "aapl-20230701.htm"],
			"size": [1200000, 900000]
		}
	}
}`

func TestFetchSubmissionsParsesRecentFilings(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{
		"https://data.sec.gov/submissions/CIK0000320193.json": sampleSubmissionsJSON,
	}}
	subs, err := FetchSubmissions(context.Background(), f, "320193")
	if err != nil {
		t.Fatalf("FetchSubmissions: %v", err)
	}
	if subs.Name != "Apple Inc." {
		t.Errorf("Name = %q", subs.Name)
	}
	if len(subs.Filings) != 2 {
		t.Fatalf("len(Filings) = %d, want 2", len(subs.Filings))
	}
	tenK := subs.Filings[0]
	if tenK.FormType != "10-K" || tenK.AccessionNumber != "0000320193-23-000106" {
		t.Errorf("Filings[0] = %+v", tenK)
	}
	wantURL := "https://www.sec.gov/Archives/edgar/data/320193/000032019323000106/aapl-20230930.htm"
	if tenK.URL != wantURL {
		t.Errorf("URL = %q, want %q", tenK.URL, wantURL)
	}
}

func TestSubmissionsByFormMatchesAmendments(t *testing.T) {
	subs := &Submissions{Filings: []Filing{
		{FormType: "10-K"},
		{FormType: "10-K/A"},
		{FormType: "10-Q"},
		{FormType: "8-K"},
	}}
	got := subs.ByForm("10-K")
	if len(got) != 2 {
		t.Fatalf("ByForm(10-K) matched %d filings, want 2", len(got))
	}
}

func TestLatestPicksMostRecentFilingDate(t *testing.T) {
	subs := &Submissions{}
	subs.Filings = append(subs.Filings, mustParseFiling("2022-01-01"), mustParseFiling("2023-11-03"), mustParseFiling("2023-01-01"))
	latest, ok := Latest(subs.Filings)
	if !ok {
		t.Fatal("expected ok")
	}
	if latest.FilingDate.Year() != 2023 || latest.FilingDate.Month() != 11 {
		t.Errorf("Latest = %v", latest.FilingDate)
	}
}

func TestLatestEmpty(t *testing.T) {
	if _, ok := Latest(nil); ok {
		t.Error("expected ok=false for empty slice")
	}
}

func TestPadCIK(t *testing.T) {
	cases := map[string]string{
		"320193":      "0000320193",
		"0000320193": "0000320193",
		"1":           "0000000001",
	}
	for in, want := range cases {
		if got := PadCIK(in); got != want {
			t.Errorf("PadCIK(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLookupCIKByTicker(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{
		companyTickersURL: `{"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."}}`,
	}}
	cik, err := LookupCIKByTicker(context.Background(), f, "aapl")
	if err != nil {
		t.Fatalf("LookupCIKByTicker: %v", err)
	}
	if cik != "0000320193" {
		t.Errorf("cik = %q", cik)
	}
}

func TestLookupCIKByTickerNotFound(t *testing.T) {
	f := &stubFetcher{responses: map[string]string{companyTickersURL: `{}`}}
	if _, err := LookupCIKByTicker(context.Background(), f, "ZZZZ"); err == nil {
		t.Error("expected error for unknown ticker")
	}
}

func mustParseFiling(date string) Filing {
	d, _ := time.Parse("2006-01-02", date)
	return Filing{FilingDate: d}
}
