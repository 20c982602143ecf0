package filing

import (
	"strings"
	"testing"
)

const sampleFormIndex = `Description:           Full Index (includes all filings)
Last Data Received:    November 3, 2023
Comments:              webmaster@sec.gov
Anonymous FTP:         ftp://ftp.sec.gov/edgar/
Cloud HTTP:            https://www.sec.gov/Archives/edgar/

Form Type   Company Name                  CIK         Date Filed  File Name
-------------------------------------------------------------------------------------------------------------------
10-K        APPLE INC                     320193      2023-11-03  edgar/data/320193/0000320193-23-000106-index.htm
10-Q        APPLE INC                     320193      2023-08-04  edgar/data/320193/0000320193-23-000077-index.htm
SC 13D      GAMESTOP CORP                 1326380     2023-06-01  edgar/data/1326380/0001326380-23-000005-index.htm
`

func TestParseIndexExtractsRows(t *testing.T) {
	entries, err := ParseIndex(strings.NewReader(sampleFormIndex))
	if err != nil {
		t.Fatalf("ParseIndex: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("len(entries) = %d, want 3", len(entries))
	}
	first := entries[0]
	if first.FormType != "10-K" || first.Company != "APPLE INC" || first.CIK != "320193" {
		t.Errorf("entries[0] = %+v", first)
	}
	if first.DateFiled != "2023-11-03" {
		t.Errorf("DateFiled = %q", first.DateFiled)
	}
	if !strings.Contains(first.FileName, "0000320193-23-000106") {
		t.Errorf("FileName = %q", first.FileName)
	}
}

func TestFilterByForm(t *testing.T) {
	entries, _ := ParseIndex(strings.NewReader(sampleFormIndex))
	tenKs := FilterByForm(entries, "10-K")
	if len(tenKs) != 1 {
		t.Fatalf("len(FilterByForm) = %d, want 1", len(tenKs))
	}
}

func TestFilterByCIKIgnoresZeroPadding(t *testing.T) {
	entries, _ := ParseIndex(strings.NewReader(sampleFormIndex))
	got := FilterByCIK(entries, "0000320193")
	if len(got) != 2 {
		t.Fatalf("len(FilterByCIK) = %d, want 2", len(got))
	}
}

func TestParseIndexMissingSeparatorErrors(t *testing.T) {
	if _, err := ParseIndex(strings.NewReader("Form Type   Company Name\nno dashes here\n")); err == nil {
		t.Error("expected error when no dashed separator line is present")
	}
}
