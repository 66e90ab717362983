package models

// SheetTable is one worksheet as raw rows of cells in row-major order.
// The first row is not treated as a header.
type SheetTable struct {
	// Name is the worksheet name the table was read from.
	Name string `json:"name"`
	// Rows holds the cells of each row, left to right. Rows may be ragged.
	Rows [][]Cell `json:"rows"`
}

// At returns the cell at the 0-based row and column, or an empty cell when
// the position lies outside the table.
func (t SheetTable) At(row, col int) Cell {
	if row < 0 || row >= len(t.Rows) {
		return Cell{}
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return Cell{}
	}
	return r[col]
}

// NewSheetTable builds a table from literal values. Strings become text
// cells, numeric types become number cells and nil becomes an empty cell.
// Other types are rendered as empty cells.
func NewSheetTable(name string, rows [][]any) SheetTable {
	t := SheetTable{Name: name, Rows: make([][]Cell, len(rows))}
	for i, row := range rows {
		cells := make([]Cell, len(row))
		for j, v := range row {
			switch x := v.(type) {
			case string:
				cells[j] = TextCell(x)
			case float64:
				cells[j] = NumberCell(x)
			case float32:
				cells[j] = NumberCell(float64(x))
			case int:
				cells[j] = NumberCell(float64(x))
			case int64:
				cells[j] = NumberCell(float64(x))
			}
		}
		t.Rows[i] = cells
	}
	return t
}
