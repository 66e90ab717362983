package parser

import (
	"fmt"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/xuri/excelize/v2"
)

// UsedRange returns the bounding box of non-empty cells in Excel range
// notation (e.g. "A1:D10"), or "" when the table holds no values.
func UsedRange(table models.SheetTable) string {
	minRow, maxRow, minCol, maxCol := findDataBounds(table.Rows)
	if minRow < 0 {
		return ""
	}

	startCell, err := excelize.CoordinatesToCellName(minCol+1, minRow+1)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(maxCol+1, maxRow+1)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}

// CountValues counts the non-empty cells of a table.
func CountValues(table models.SheetTable) int {
	count := 0
	for _, row := range table.Rows {
		for _, cell := range row {
			if !cell.IsEmpty() {
				count++
			}
		}
	}
	return count
}

// findDataBounds finds the 0-based bounding box of non-empty cells.
// All bounds are -1 when there is no data.
func findDataBounds(rows [][]models.Cell) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell.IsEmpty() {
				continue
			}
			if minRow < 0 || rowIdx < minRow {
				minRow = rowIdx
			}
			if maxRow < 0 || rowIdx > maxRow {
				maxRow = rowIdx
			}
			if minCol < 0 || colIdx < minCol {
				minCol = colIdx
			}
			if maxCol < 0 || colIdx > maxCol {
				maxCol = colIdx
			}
		}
	}

	return
}
