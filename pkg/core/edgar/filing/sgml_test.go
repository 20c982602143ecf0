package filing

import (
	"strings"
	"testing"
)

// sampleTenKHeader mirrors a typical 10-K SGML header with one FILER
// block containing nested COMPANY-DATA and FILING-VALUES sub-blocks.
const sampleTenKHeader = `<SEC-HEADER>0000320193-23-000106.hdr.sgml : 20231103
<ACCESSION-NUMBER>0000320193-23-000106
<TYPE>10-K
<PERIOD>20230930
<FILED-AS-OF-DATE>20231103

<FILER>
	<COMPANY-DATA>
		<CONFORMED-NAME>APPLE INC
		<CIK>0000320193
		<STANDARD-INDUSTRIAL-CLASSIFICATION>ELECTRONIC COMPUTERS [3571]
		<IRS-NUMBER>942404110
	</COMPANY-DATA>
	<FILING-VALUES>
		<TYPE>10-K
		<FILE-NUMBER>001-36743
		<FILM-NUMBER>231370571
	</FILING-VALUES>
</FILER>
</SEC-HEADER>
`

// sampleSchedule13DHeader mirrors GameStop's 2019 Schedule 13D, filed
// jointly by a SUBJECT-COMPANY block and multiple REPORTING-OWNER
// blocks (spec.md §8 worked scenario).
const sampleSchedule13DHeader = `<SEC-HEADER>0001326380-19-000123.hdr.sgml : 20190814
<ACCESSION-NUMBER>0001326380-19-000123
<TYPE>SC 13D
<FILED-AS-OF-DATE>20190814

<SUBJECT-COMPANY>
	<COMPANY-DATA>
		<CONFORMED-NAME>GAMESTOP CORP
		<CIK>0001326380
	</COMPANY-DATA>
</SUBJECT-COMPANY>

<REPORTING-OWNER>
	<OWNER-DATA>
		<CONFORMED-NAME>Hestia Capital Partners LP
		<CIK>0001653909
	</OWNER-DATA>
	<FILING-VALUES>
		<TYPE>SC 13D
		<FILE-NUMBER>005-58855
	</FILING-VALUES>
</REPORTING-OWNER>

<REPORTING-OWNER>
	<OWNER-DATA>
		<CONFORMED-NAME>Permit Capital Enterprise Fund LP
		<CIK>0001653910
	</OWNER-DATA>
	<FILING-VALUES>
		<TYPE>SC 13D
		<FILE-NUMBER>005-58855
	</FILING-VALUES>
</REPORTING-OWNER>
</SEC-HEADER>
`

func TestParseSGMLHeaderTenK(t *testing.T) {
	h, err := ParseSGMLHeader(strings.NewReader(sampleTenKHeader))
	if err != nil {
		t.Fatalf("ParseSGMLHeader: %v", err)
	}
	if h.AccessionNumber != "0000320193-23-000106" {
		t.Errorf("AccessionNumber = %q", h.AccessionNumber)
	}
	if h.SubmissionType != "10-K" {
		t.Errorf("SubmissionType = %q", h.SubmissionType)
	}
	if h.PeriodOfReport != "20230930" {
		t.Errorf("PeriodOfReport = %q", h.PeriodOfReport)
	}
	if len(h.Filers) != 1 {
		t.Fatalf("len(Filers) = %d, want 1", len(h.Filers))
	}
	filer := h.Filers[0]
	if filer.CompanyName != "APPLE INC" || filer.CIK != "0000320193" {
		t.Errorf("Filers[0] = %+v", filer)
	}
	if filer.SIC != "3571" {
		t.Errorf("SIC = %q, want 3571", filer.SIC)
	}
	if filer.FileNumber != "001-36743" {
		t.Errorf("FileNumber = %q", filer.FileNumber)
	}
}

func TestParseSGMLHeaderJointSchedule13D(t *testing.T) {
	h, err := ParseSGMLHeader(strings.NewReader(sampleSchedule13DHeader))
	if err != nil {
		t.Fatalf("ParseSGMLHeader: %v", err)
	}
	if h.SubjectCompany == nil {
		t.Fatal("SubjectCompany = nil")
	}
	if h.SubjectCompany.CompanyName != "GAMESTOP CORP" {
		t.Errorf("SubjectCompany.CompanyName = %q", h.SubjectCompany.CompanyName)
	}
	if len(h.ReportingOwners) != 2 {
		t.Fatalf("len(ReportingOwners) = %d, want 2 joint filers", len(h.ReportingOwners))
	}
	for _, owner := range h.ReportingOwners {
		if !owner.IsReportingOwner {
			t.Errorf("owner %q: IsReportingOwner = false", owner.CompanyName)
		}
		if owner.FileNumber != "005-58855" {
			t.Errorf("owner %q: FileNumber = %q", owner.CompanyName, owner.FileNumber)
		}
	}
	if h.ReportingOwners[0].CompanyName != "Hestia Capital Partners LP" {
		t.Errorf("ReportingOwners[0] = %+v", h.ReportingOwners[0])
	}
	if h.ReportingOwners[1].CompanyName != "Permit Capital Enterprise Fund LP" {
		t.Errorf("ReportingOwners[1] = %+v", h.ReportingOwners[1])
	}
}

func TestParseSGMLHeaderStopsAtClosingTag(t *testing.T) {
	headerWithTrailingDoc := sampleTenKHeader + "\n<DOCUMENT>\n<TYPE>10-K\n<TEXT>\nnot header content\n</TEXT>\n</DOCUMENT>\n"
	h, err := ParseSGMLHeader(strings.NewReader(headerWithTrailingDoc))
	if err != nil {
		t.Fatalf("ParseSGMLHeader: %v", err)
	}
	if h.AccessionNumber != "0000320193-23-000106" {
		t.Errorf("AccessionNumber = %q", h.AccessionNumber)
	}
	if len(h.Filers) != 1 {
		t.Errorf("len(Filers) = %d, want 1 (trailing DOCUMENT block must be ignored)", len(h.Filers))
	}
}
