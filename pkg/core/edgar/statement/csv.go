package statement

import (
	"fmt"

	"github.com/gocarina/gocsv"
)

// csvRow is one flattened LineItem row for CSV export, tagged the way
// the pack's tabular ingestion/export structs are (grounded on
// penny-vault-pv-data's provider/tiingo.go asset rows).
type csvRow struct {
	Concept string `csv:"concept"`
	Label   string `csv:"label"`
	Depth   int    `csv:"depth"`
	IsTotal bool   `csv:"is_total"`
	Value   string `csv:"value"`
	Unit    string `csv:"unit"`
	Quality string `csv:"quality"`
}

// ExportCSV renders a Statement as CSV text (spec.md §6 "produced
// outputs"). A LineItem with no resolved Fact still exports a row,
// with empty value, unit and quality cells, preserving the
// presentation tree's shape.
func (s *Statement) ExportCSV() (string, error) {
	rows := make([]csvRow, len(s.Items))
	for i, item := range s.Items {
		row := csvRow{Concept: string(item.Concept), Label: item.Label, Depth: item.Depth, IsTotal: item.IsTotal}
		if item.Fact != nil {
			row.Value = fmt.Sprintf("%v", item.Fact.Value.Number)
			row.Unit = item.Fact.Unit.Canonical
			row.Quality = string(item.Fact.DataQuality)
		}
		rows[i] = row
	}
	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", fmt.Errorf("exporting statement %s to CSV: %w", s.Role, err)
	}
	return out, nil
}
