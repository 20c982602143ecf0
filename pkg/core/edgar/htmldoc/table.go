package htmldoc

// Cell is one expanded grid cell of a TableMatrix. InGrid is false for
// the synthetic cells a colspan/rowspan expansion fills in; renderers
// skip them so a merged cell's text appears once, at its origin.
type Cell struct {
	Text    string
	ColSpan int
	RowSpan int
	InGrid  bool
	IsHeader bool
}

// TableMatrix is a fully expanded (no colspan/rowspan) view of an
// HTML <table>, built by walking <tr>/<td>/<th> and growing a virtual
// grid — grounded on the teacher's converter/table_converter.go
// ConvertTableToMarkdown, generalized from "produce Markdown directly"
// to "produce a reusable grid" so both renderers (Markdown and plain
// text) and the header/section detectors share one expansion pass.
type TableMatrix struct {
	Rows     [][]Cell
	NumCols  int
	HeaderRows int // how many leading rows consist only of <th> cells
	Caption  string
}

// rawCell is one <td>/<th> as read off the source HTML, before grid
// expansion.
type rawCell struct {
	Text     string
	ColSpan  int
	RowSpan  int
	IsHeader bool
}

// BuildTableMatrix expands raw rows of (possibly colspan/rowspan'd)
// cells into a rectangular grid. Each input row is the raw <td>/<th>
// sequence as parsed in document order; rows must already be grouped
// in document (top-to-bottom) order.
func BuildTableMatrix(rawRows [][]rawCell, caption string) *TableMatrix {
	maxCols := 0
	for _, row := range rawRows {
		cols := 0
		for _, c := range row {
			span := c.ColSpan
			if span < 1 {
				span = 1
			}
			cols += span
		}
		if cols > maxCols {
			maxCols = cols
		}
	}

	grid := make([][]Cell, len(rawRows))
	for i := range grid {
		grid[i] = make([]Cell, maxCols)
	}
	// occupied[r][c] tracks cells already filled in by a prior row's
	// rowspan, so the current row's cells are placed in the first free
	// column rather than overwriting them.
	occupied := make([][]bool, len(rawRows))
	for i := range occupied {
		occupied[i] = make([]bool, maxCols)
	}

	headerRows := 0
	for r, row := range rawRows {
		col := 0
		rowAllHeader := len(row) > 0
		for _, rc := range row {
			for col < maxCols && occupied[r][col] {
				col++
			}
			if col >= maxCols {
				break
			}
			colSpan := rc.ColSpan
			if colSpan < 1 {
				colSpan = 1
			}
			rowSpan := rc.RowSpan
			if rowSpan < 1 {
				rowSpan = 1
			}
			for dr := 0; dr < rowSpan && r+dr < len(rawRows); dr++ {
				for dc := 0; dc < colSpan && col+dc < maxCols; dc++ {
					cell := Cell{ColSpan: colSpan, RowSpan: rowSpan, IsHeader: rc.IsHeader}
					if dr == 0 && dc == 0 {
						cell.Text = rc.Text
						cell.InGrid = true
					}
					grid[r+dr][col+dc] = cell
					occupied[r+dr][col+dc] = true
				}
			}
			if !rc.IsHeader {
				rowAllHeader = false
			}
			col += colSpan
		}
		if rowAllHeader && r == headerRows {
			headerRows++
		}
	}

	return &TableMatrix{Rows: grid, NumCols: maxCols, HeaderRows: headerRows, Caption: caption}
}

// ColumnText returns every row's text for column c, skipping
// non-origin (InGrid==false) merged-cell placeholders as empty.
func (m *TableMatrix) ColumnText(c int) []string {
	out := make([]string, len(m.Rows))
	for r, row := range m.Rows {
		if c < len(row) && row[c].InGrid {
			out[r] = row[c].Text
		}
	}
	return out
}
