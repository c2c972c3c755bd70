// Package parser provides the tolerant workbook scanner: cell access, sheet
// classification, block detection and answer resolution.
package parser

import (
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"golang.org/x/text/unicode/norm"
)

// Sheet is read-only, 1-based cell access over one worksheet.
type Sheet interface {
	// Name returns the sheet display name.
	Name() string
	// ValueAt returns the trimmed cell text, or "" for an empty cell.
	ValueAt(row, col int) string
	// IsBoldAt reports whether the cell text is bold.
	IsBoldAt(row, col int) bool
	// MaxRow returns the last row that carries any value.
	MaxRow() int
}

// Workbook is an ordered collection of sheets.
type Workbook interface {
	Sheets() []Sheet
}

// Grid is an in-memory Sheet. Workbooks are loaded into grids before
// scanning so that no I/O happens mid-block.
type Grid struct {
	name   string
	cells  map[models.CellAddress]models.CellView
	maxRow int
}

// NewGrid creates an empty grid with the given sheet name.
func NewGrid(name string) *Grid {
	return &Grid{
		name:  name,
		cells: make(map[models.CellAddress]models.CellView),
	}
}

// Set stores a cell. Text is NFC-normalized and trimmed; empty text clears the cell.
// It returns the grid so fixtures can be chained.
func (g *Grid) Set(row, col int, text string, bold bool) *Grid {
	addr := models.CellAddress{Row: row, Col: col}
	text = normalizeText(text)
	if text == "" {
		delete(g.cells, addr)
		return g
	}
	g.cells[addr] = models.CellView{Text: text, Bold: bold}
	if row > g.maxRow {
		g.maxRow = row
	}
	return g
}

// Name implements Sheet.
func (g *Grid) Name() string { return g.name }

// Cell returns the snapshot at (row, col).
func (g *Grid) Cell(row, col int) models.CellView {
	return g.cells[models.CellAddress{Row: row, Col: col}]
}

// ValueAt implements Sheet.
func (g *Grid) ValueAt(row, col int) string { return g.Cell(row, col).Text }

// IsBoldAt implements Sheet.
func (g *Grid) IsBoldAt(row, col int) bool { return g.Cell(row, col).Bold }

// MaxRow implements Sheet.
func (g *Grid) MaxRow() int { return g.maxRow }

// Book is a named, ordered list of sheets.
type Book struct {
	// Name is the workbook file name.
	Name   string
	sheets []Sheet
}

// NewBook creates a Book from sheets in declaration order.
func NewBook(name string, sheets ...Sheet) *Book {
	return &Book{Name: name, sheets: sheets}
}

// Sheets implements Workbook.
func (b *Book) Sheets() []Sheet { return b.sheets }

func normalizeText(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}
