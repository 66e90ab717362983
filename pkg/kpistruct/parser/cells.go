package parser

import (
	"strconv"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
	"github.com/xuri/excelize/v2"
)

// ReadSheet converts a worksheet into a SheetTable.
// Cell values are read unformatted; cells stored as numbers become number
// cells, string cells stay text even when they look numeric.
func ReadSheet(f *excelize.File, sheetName string) (models.SheetTable, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return models.SheetTable{}, err
	}

	table := models.SheetTable{Name: sheetName, Rows: make([][]models.Cell, len(rows))}
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, raw := range row {
			if raw == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return models.SheetTable{}, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return models.SheetTable{}, err
			}
			cells[colIdx] = parseValue(raw, cellType)
		}
		table.Rows[rowIdx] = cells
	}

	return table, nil
}

// parseValue maps a raw cell value to a Cell using the stored cell type.
// Untyped cells are numeric in OOXML, so they are parsed as numbers and
// fall back to text when that fails.
func parseValue(raw string, cellType excelize.CellType) models.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString,
		excelize.CellTypeFormula, excelize.CellTypeBool, excelize.CellTypeError:
		return models.TextCell(raw)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return models.NumberCell(f)
	}
	return models.TextCell(raw)
}
