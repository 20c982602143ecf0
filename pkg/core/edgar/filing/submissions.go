// Package filing resolves which filings exist for a company and maps
// their accession numbers to downloadable URLs, adapted from the
// teacher's edgar.Parser (LookupCIK/GetFilingMetadataByYear): the
// teacher's sequential ticker-cache-then-submissions-fetch logic is
// kept, generalized to depend on the fetch.Fetcher collaborator
// (spec.md §6 boundary contract) instead of an embedded *http.Client,
// and to return every matching filing rather than only the single
// best candidate.
package filing

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgunning/edgartools-go/pkg/core/edgar/fetch"
)

const (
	submissionsURLFormat   = "https://data.sec.gov/submissions/CIK%s.json"
	companyTickersURL      = "https://www.sec.gov/files/company_tickers.json"
	filingArchiveURLFormat = "https://www.sec.gov/Archives/edgar/data/%s/%s/%s"
)

// Submissions is the SEC submissions API response for one CIK,
// denormalized from its parallel-array wire format (spec.md §6:
// "SEC Company Facts API JSON").
type Submissions struct {
	CIK     string
	Name    string
	Tickers []string
	SIC     string
	Filings []Filing
}

// Filing is one denormalized filing record.
type Filing struct {
	AccessionNumber string
	FilingDate      time.Time
	ReportDate      time.Time
	FormType        string
	PrimaryDocument string
	Size            int
	URL             string
}

type submissionsWire struct {
	CIK     json.Number `json:"cik"`
	Name    string      `json:"name"`
	Tickers []string    `json:"tickers"`
	SIC     string      `json:"sic"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			ReportDate      []string `json:"reportDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
			Size            []int    `json:"size"`
		} `json:"recent"`
	} `json:"filings"`
}

// PadCIK zero-pads cik to the 10-digit form the submissions API URL
// requires.
func PadCIK(cik string) string {
	cik = strings.TrimLeft(strings.TrimSpace(cik), "0")
	if cik == "" {
		cik = "0"
	}
	return fmt.Sprintf("%010s", cik)
}

// FetchSubmissions downloads and parses the submissions JSON for cik.
// Identity (User-Agent) is carried by f, not by this call.
func FetchSubmissions(ctx context.Context, f fetch.Fetcher, cik string) (*Submissions, error) {
	cik = PadCIK(cik)
	url := fmt.Sprintf(submissionsURLFormat, cik)
	body, _, _, err := f.Fetch(ctx, url, "")
	if err != nil {
		return nil, fmt.Errorf("fetching submissions for CIK %s: %w", cik, err)
	}

	var wire submissionsWire
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, fmt.Errorf("parsing submissions JSON for CIK %s: %w", cik, err)
	}

	recent := wire.Filings.Recent
	subs := &Submissions{CIK: cik, Name: wire.Name, Tickers: wire.Tickers, SIC: wire.SIC}
	for i := range recent.AccessionNumber {
		filingDate, _ := time.Parse("2006-01-02", valueAt(recent.FilingDate, i))
		reportDate, _ := time.Parse("2006-01-02", valueAt(recent.ReportDate, i))
		accession := recent.AccessionNumber[i]
		primaryDoc := valueAt(recent.PrimaryDocument, i)

		subs.Filings = append(subs.Filings, Filing{
			AccessionNumber: accession,
			FilingDate:      filingDate,
			ReportDate:      reportDate,
			FormType:        valueAt(recent.Form, i),
			PrimaryDocument: primaryDoc,
			Size:            intValueAt(recent.Size, i),
			URL:             filingDocumentURL(cik, accession, primaryDoc),
		})
	}
	return subs, nil
}

func filingDocumentURL(cik, accession, primaryDoc string) string {
	accessionNoDashes := strings.ReplaceAll(accession, "-", "")
	return fmt.Sprintf(filingArchiveURLFormat, strings.TrimLeft(cik, "0"), accessionNoDashes, primaryDoc)
}

func valueAt(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}

func intValueAt(s []int, i int) int {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// ByForm filters subs.Filings to the requested form types. "10-K"
// also matches "10-K/A" and "10-KA" amendments, mirroring the
// teacher's GetFilingMetadataByYear form-matching rule.
func (s *Submissions) ByForm(forms ...string) []Filing {
	want := make(map[string]bool, len(forms))
	for _, f := range forms {
		want[f] = true
	}
	var out []Filing
	for _, f := range s.Filings {
		if formMatches(f.FormType, want) {
			out = append(out, f)
		}
	}
	return out
}

func formMatches(form string, want map[string]bool) bool {
	if want[form] {
		return true
	}
	if want["10-K"] && (form == "10-K/A" || form == "10-KA") {
		return true
	}
	if want["10-Q"] && (form == "10-Q/A" || form == "10-QA") {
		return true
	}
	return false
}

// Latest returns the single most recently filed entry among filings,
// or the zero Filing and false if filings is empty.
func Latest(filings []Filing) (Filing, bool) {
	if len(filings) == 0 {
		return Filing{}, false
	}
	best := filings[0]
	for _, f := range filings[1:] {
		if f.FilingDate.After(best.FilingDate) {
			best = f
		}
	}
	return best, true
}

// SortByFilingDateDesc returns a copy of filings ordered newest-first.
func SortByFilingDateDesc(filings []Filing) []Filing {
	out := make([]Filing, len(filings))
	copy(out, filings)
	sort.Slice(out, func(i, j int) bool { return out[i].FilingDate.After(out[j].FilingDate) })
	return out
}

// LookupCIKByTicker resolves a ticker symbol to a zero-padded CIK via
// SEC's company_tickers.json mapping.
func LookupCIKByTicker(ctx context.Context, f fetch.Fetcher, ticker string) (string, error) {
	body, _, _, err := f.Fetch(ctx, companyTickersURL, "")
	if err != nil {
		return "", fmt.Errorf("fetching ticker mapping: %w", err)
	}

	var mapping map[string]struct {
		CIK    int    `json:"cik_str"`
		Ticker string `json:"ticker"`
		Title  string `json:"title"`
	}
	if err := json.Unmarshal(body, &mapping); err != nil {
		return "", fmt.Errorf("parsing ticker mapping: %w", err)
	}

	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	for _, entry := range mapping {
		if strings.ToUpper(entry.Ticker) == ticker {
			return fmt.Sprintf("%010d", entry.CIK), nil
		}
	}
	return "", fmt.Errorf("ticker %s not found in SEC ticker mapping", ticker)
}
