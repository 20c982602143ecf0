package filing

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// IndexEntry is one row of an EDGAR quarterly or daily full-index file
// (form.idx / company.idx / master.idx), as described in spec.md §6
// "consumed file formats".
type IndexEntry struct {
	FormType  string
	Company   string
	CIK       string
	DateFiled string
	FileName  string
}

// indexColumnNames is the fixed column order of EDGAR's form.idx /
// company.idx / master.idx files. Unlike a typical fixed-width format,
// EDGAR's separator line is one unbroken run of dashes rather than
// one run per column, so column boundaries must be derived from where
// each title starts on the header line itself.
var indexColumnNames = []string{"Form Type", "Company Name", "CIK", "Date Filed", "File Name"}

// ParseIndex parses the fixed-width "Form Type  Company Name  CIK
// Date Filed  File Name" text format EDGAR publishes at
// https://www.sec.gov/Archives/edgar/full-index/{year}/{QTR}/form.idx.
func ParseIndex(r io.Reader) ([]IndexEntry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var headerLine string
	var columns []string
	var offsets []int
	inHeader := true

	var entries []IndexEntry

	for scanner.Scan() {
		line := scanner.Text()
		if inHeader {
			if isDashSeparator(line) {
				if headerLine == "" {
					return nil, fmt.Errorf("index header dashes found before a column title line")
				}
				var err error
				columns, offsets, err = columnOffsets(headerLine)
				if err != nil {
					return nil, err
				}
				inHeader = false
				continue
			}
			if strings.TrimSpace(line) != "" {
				headerLine = line
			}
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry := splitByOffsets(line, columns, offsets)
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning index: %w", err)
	}
	if inHeader {
		return nil, fmt.Errorf("index file had no dashed column-separator line")
	}
	return entries, nil
}

func isDashSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 4 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

// columnOffsets locates each known column title's start position on
// the header line, in whatever order they actually appear (form.idx,
// company.idx and master.idx all use different orderings).
func columnOffsets(headerLine string) (columns []string, offsets []int, err error) {
	type hit struct {
		name  string
		start int
	}
	var hits []hit
	for _, name := range indexColumnNames {
		idx := strings.Index(headerLine, name)
		if idx == -1 {
			return nil, nil, fmt.Errorf("index header missing expected column %q: %q", name, headerLine)
		}
		hits = append(hits, hit{name: name, start: idx})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	for _, h := range hits {
		columns = append(columns, h.name)
		offsets = append(offsets, h.start)
	}
	return columns, offsets, nil
}

func splitByOffsets(line string, columns []string, offsets []int) IndexEntry {
	fields := make(map[string]string, len(columns))
	for i, col := range columns {
		start := offsets[i]
		end := len(line)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if start >= len(line) {
			fields[col] = ""
			continue
		}
		if end > len(line) {
			end = len(line)
		}
		fields[col] = strings.TrimSpace(line[start:end])
	}
	return IndexEntry{
		FormType:  fields["Form Type"],
		Company:   fields["Company Name"],
		CIK:       fields["CIK"],
		DateFiled: fields["Date Filed"],
		FileName:  fields["File Name"],
	}
}

// FilterByForm returns only the entries whose FormType equals form.
func FilterByForm(entries []IndexEntry, form string) []IndexEntry {
	var out []IndexEntry
	for _, e := range entries {
		if e.FormType == form {
			out = append(out, e)
		}
	}
	return out
}

// FilterByCIK returns only the entries whose numeric CIK equals cik,
// comparing as integers so zero-padding differences don't matter.
func FilterByCIK(entries []IndexEntry, cik string) []IndexEntry {
	want, err := strconv.Atoi(strings.TrimLeft(cik, "0"))
	if err != nil {
		return nil
	}
	var out []IndexEntry
	for _, e := range entries {
		got, err := strconv.Atoi(strings.TrimLeft(e.CIK, "0"))
		if err != nil {
			continue
		}
		if got == want {
			out = append(out, e)
		}
	}
	return out
}
