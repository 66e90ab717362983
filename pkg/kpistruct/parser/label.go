package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sfa-reports/kpistruct-go/pkg/kpistruct/models"
)

// numericPrefix matches the longest leading number left after stripping.
var numericPrefix = regexp.MustCompile(`^-?(\d+\.?\d*|\.\d+)`)

// FindNumeric locates the first text cell, in row-major order, whose trimmed
// value equals label exactly and returns the number in the cell to its right.
// It returns nil when the label is absent or the adjacent value is not a number.
//
// Only the first occurrence is honoured. Later rows repeating the label, such
// as subtotals, are ignored.
func FindNumeric(table models.SheetTable, label string) *float64 {
	for r, row := range table.Rows {
		for c, cell := range row {
			if cell.Kind != models.CellText || strings.TrimSpace(cell.Text) != label {
				continue
			}
			return CoerceNumber(table.At(r, c+1))
		}
	}
	return nil
}

// CoerceNumber converts a cell to a number. Numeric cells are used as is.
// Text cells are stripped of every character other than digits, '.' and '-'
// and the longest leading number of what remains is parsed, so "$50,000"
// yields 50000 and "1.2.3" yields 1.2. Empty cells and text with no leading
// number yield nil.
func CoerceNumber(cell models.Cell) *float64 {
	switch cell.Kind {
	case models.CellNumber:
		if math.IsNaN(cell.Number) || math.IsInf(cell.Number, 0) {
			return nil
		}
		n := cell.Number
		return &n
	case models.CellText:
		return parseStripped(cell.Text)
	default:
		return nil
	}
}

func parseStripped(s string) *float64 {
	stripped := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)

	prefix := numericPrefix.FindString(stripped)
	if prefix == "" {
		return nil
	}
	n, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return nil
	}
	return &n
}
