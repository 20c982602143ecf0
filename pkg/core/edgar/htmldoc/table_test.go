package htmldoc

import "testing"

func TestBuildTableMatrixColspan(t *testing.T) {
	rows := [][]rawCell{
		{{Text: "Revenue", ColSpan: 2, IsHeader: true}},
		{{Text: "2023"}, {Text: "100"}},
	}
	m := BuildTableMatrix(rows, "")
	if m.NumCols != 2 {
		t.Fatalf("NumCols = %d, want 2", m.NumCols)
	}
	if m.Rows[0][0].Text != "Revenue" || !m.Rows[0][0].InGrid {
		t.Errorf("origin cell = %+v", m.Rows[0][0])
	}
	if m.Rows[0][1].InGrid {
		t.Errorf("spanned cell should not be InGrid: %+v", m.Rows[0][1])
	}
	if m.Rows[1][0].Text != "2023" || m.Rows[1][1].Text != "100" {
		t.Errorf("data row = %+v", m.Rows[1])
	}
}

func TestBuildTableMatrixRowspan(t *testing.T) {
	rows := [][]rawCell{
		{{Text: "Assets", RowSpan: 2}, {Text: "Current"}},
		{{Text: "Cash"}},
	}
	m := BuildTableMatrix(rows, "")
	if m.NumCols != 2 {
		t.Fatalf("NumCols = %d, want 2", m.NumCols)
	}
	if m.Rows[0][0].Text != "Assets" || !m.Rows[0][0].InGrid {
		t.Errorf("row0 col0 = %+v", m.Rows[0][0])
	}
	if m.Rows[1][0].InGrid {
		t.Errorf("rowspan placeholder should not be InGrid: %+v", m.Rows[1][0])
	}
	if m.Rows[1][1].Text != "Cash" {
		t.Errorf("row1 col1 = %+v, want Cash (placed after the rowspan slot)", m.Rows[1][1])
	}
}

func TestTableMatrixHeaderRowDetection(t *testing.T) {
	rows := [][]rawCell{
		{{Text: "Year", IsHeader: true}, {Text: "Revenue", IsHeader: true}},
		{{Text: "2023"}, {Text: "100"}},
	}
	m := BuildTableMatrix(rows, "")
	if m.HeaderRows != 1 {
		t.Errorf("HeaderRows = %d, want 1", m.HeaderRows)
	}
}

func TestColumnText(t *testing.T) {
	rows := [][]rawCell{
		{{Text: "Year"}, {Text: "Revenue"}},
		{{Text: "2023"}, {Text: "100"}},
	}
	m := BuildTableMatrix(rows, "")
	got := m.ColumnText(1)
	want := []string{"Revenue", "100"}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("ColumnText(1)[%d] = %q, want %q", i, got[i], w)
		}
	}
}
