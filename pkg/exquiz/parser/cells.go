package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// OpenWorkbook reads an xlsx file fully into memory.
// Every sheet is loaded into a Grid with cell text and bold flags.
func OpenWorkbook(path string) (*Book, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	book := NewBook(filepath.Base(path))
	for _, sheetName := range f.GetSheetList() {
		grid, err := ExtractCells(f, sheetName)
		if err != nil {
			return nil, fmt.Errorf("sheet %q: %w", sheetName, err)
		}
		book.sheets = append(book.sheets, grid)
	}
	return book, nil
}

// ExtractCells loads the non-empty cells of a sheet into a Grid.
func ExtractCells(f *excelize.File, sheetName string) (*Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	styles := newBoldCache(f)
	grid := NewGrid(sheetName)
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		for colIdx, cellValue := range row {
			if strings.TrimSpace(cellValue) == "" {
				continue
			}
			colNum := colIdx + 1
			cellName, err := excelize.CoordinatesToCellName(colNum, rowNum)
			if err != nil {
				return nil, err
			}
			grid.Set(rowNum, colNum, cellValue, styles.isBold(sheetName, cellName))
		}
	}
	return grid, nil
}

// boldCache resolves cell boldness, memoizing style lookups by style index.
type boldCache struct {
	f      *excelize.File
	styles map[int]bool
}

func newBoldCache(f *excelize.File) *boldCache {
	return &boldCache{f: f, styles: make(map[int]bool)}
}

// isBold reports whether a cell is bold through its cell style, or through
// rich text where every visible run is bold.
func (c *boldCache) isBold(sheetName, cellName string) bool {
	styleID, err := c.f.GetCellStyle(sheetName, cellName)
	if err == nil {
		bold, ok := c.styles[styleID]
		if !ok {
			bold = c.styleIsBold(styleID)
			c.styles[styleID] = bold
		}
		if bold {
			return true
		}
	}

	runs, err := c.f.GetCellRichText(sheetName, cellName)
	if err != nil || len(runs) == 0 {
		return false
	}
	visible := 0
	for _, run := range runs {
		if strings.TrimSpace(run.Text) == "" {
			continue
		}
		if run.Font == nil || !run.Font.Bold {
			return false
		}
		visible++
	}
	return visible > 0
}

func (c *boldCache) styleIsBold(styleID int) bool {
	style, err := c.f.GetStyle(styleID)
	if err != nil || style == nil || style.Font == nil {
		return false
	}
	return style.Font.Bold
}
