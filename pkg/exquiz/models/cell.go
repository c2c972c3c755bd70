// Package models defines data structures for question extraction.
package models

import "github.com/xuri/excelize/v2"

// CellAddress identifies a single cell (1-based row and column).
type CellAddress struct {
	// Row is the row index (1-based).
	Row int `json:"row"`
	// Col is the column index (1-based).
	Col int `json:"col"`
}

// String returns the address in A1 notation, e.g. "C12".
func (a CellAddress) String() string {
	name, err := excelize.CoordinatesToCellName(a.Col, a.Row)
	if err != nil {
		return "?"
	}
	return name
}

// CellView is a read-only snapshot of a cell as seen by the scanner.
type CellView struct {
	// Text is the cell text (empty if the cell has no value).
	Text string `json:"text,omitempty"`
	// Bold reports whether the cell text is rendered bold.
	Bold bool `json:"bold,omitempty"`
}

// Empty reports whether the cell carries no text.
func (v CellView) Empty() bool {
	return v.Text == ""
}
