// Package models defines data structures for KPI extraction.
package models

import "strconv"

// CellKind distinguishes the variants a worksheet cell can hold.
type CellKind int

const (
	// CellEmpty is an absent or blank cell.
	CellEmpty CellKind = iota
	// CellText is a string cell.
	CellText
	// CellNumber is a numeric cell.
	CellNumber
)

// Cell is a single worksheet value: Empty, Text or Number.
// The zero value is an empty cell.
type Cell struct {
	// Kind selects which of Text or Number is meaningful.
	Kind CellKind `json:"kind"`
	// Text holds the string value for CellText.
	Text string `json:"text,omitempty"`
	// Number holds the numeric value for CellNumber.
	Number float64 `json:"number,omitempty"`
}

// TextCell returns a text cell.
func TextCell(s string) Cell {
	return Cell{Kind: CellText, Text: s}
}

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell {
	return Cell{Kind: CellNumber, Number: n}
}

// IsEmpty reports whether the cell holds no value.
func (c Cell) IsEmpty() bool {
	return c.Kind == CellEmpty
}

// String renders the cell the way it would appear in a sheet dump.
func (c Cell) String() string {
	switch c.Kind {
	case CellText:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}
