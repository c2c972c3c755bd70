package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"github.com/xuri/excelize/v2"
)

// Layout names the columns a question block is laid out in.
type Layout struct {
	// NumberCol holds question numbers ("12.") and option labels ("A", "b.").
	NumberCol int
	// TextCol holds prompts, option texts, paragraphs and answer rows.
	TextCol int
	// AnswerCol holds a separately located answer cell on the question row.
	AnswerCol int
}

// DefaultLayout returns the B/C/D layout used by the exam workbooks.
func DefaultLayout() Layout {
	return Layout{
		NumberCol: 2,
		TextCol:   3,
		AnswerCol: 4,
	}
}

// Validate checks that all columns are positive and distinct.
func (l Layout) Validate() error {
	if l.NumberCol < 1 || l.TextCol < 1 || l.AnswerCol < 1 {
		return fmt.Errorf("layout columns must be positive: %+v", l)
	}
	if l.NumberCol == l.TextCol || l.NumberCol == l.AnswerCol || l.TextCol == l.AnswerCol {
		return fmt.Errorf("layout columns must be distinct: %+v", l)
	}
	return nil
}

// ParseColumn parses a column given either as a letter ("C") or a 1-based number ("3").
func ParseColumn(s string) (int, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, "$", ""))
	if s == "" {
		return 0, fmt.Errorf("empty column")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 {
			return 0, fmt.Errorf("column %d out of range", n)
		}
		return n, nil
	}
	return excelize.ColumnNameToNumber(s)
}

// ParseCellAddress parses an A1-style reference such as "C12" or "$C$12".
func ParseCellAddress(ref string) (models.CellAddress, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	col, row, err := excelize.CellNameToCoordinates(ref)
	if err != nil {
		return models.CellAddress{}, err
	}
	return models.CellAddress{Row: row, Col: col}, nil
}

// GridFromCells builds a Grid from A1-keyed cells. It is convenient for
// fixtures where the sheet layout is written out by hand.
func GridFromCells(name string, cells map[string]models.CellView) (*Grid, error) {
	grid := NewGrid(name)
	for ref, view := range cells {
		addr, err := ParseCellAddress(ref)
		if err != nil {
			return nil, fmt.Errorf("cell %q: %w", ref, err)
		}
		grid.Set(addr.Row, addr.Col, view.Text, view.Bold)
	}
	return grid, nil
}
