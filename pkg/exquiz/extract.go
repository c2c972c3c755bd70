package exquiz

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/parser"
	"golang.org/x/sync/errgroup"
)

// Extract extracts questions from an Excel workbook.
// Only whole-file failures are returned as errors; everything else is
// reported as diagnostics on the result.
func Extract(path string, opts Options) (*models.WorkbookResult, error) {
	level, err := opts.ResolveLevel(path)
	if err != nil {
		return nil, NewWorkbookOpenError(path, ErrUnknownLevel, nil)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewWorkbookOpenError(path, ErrFileNotFound, nil)
		}
		return nil, NewWorkbookOpenError(path, ErrInvalidFormat, err)
	}

	book, err := parser.OpenWorkbook(path)
	if err != nil {
		return nil, NewWorkbookOpenError(path, ErrInvalidFormat, err)
	}

	res := ExtractBook(book, level, opts)
	res.BookName = book.Name
	return res, nil
}

// ExtractBook scans every sheet of an in-memory workbook. Sheets may be
// scanned in parallel; results are merged in sheet declaration order.
func ExtractBook(book parser.Workbook, level models.Level, opts Options) *models.WorkbookResult {
	sheets := book.Sheets()
	results := make([]parser.SheetResult, len(sheets))
	scanOpts := []parser.ScannerOption{parser.WithLayout(opts.layout())}

	if opts.workers() == 1 || len(sheets) < 2 {
		for i, sheet := range sheets {
			results[i] = parser.ScanSheet(sheet, level, scanOpts...)
		}
	} else {
		var g errgroup.Group
		g.SetLimit(opts.workers())
		for i, sheet := range sheets {
			g.Go(func() error {
				results[i] = parser.ScanSheet(sheet, level, scanOpts...)
				return nil
			})
		}
		_ = g.Wait() // scans never fail
	}

	res := &models.WorkbookResult{
		Level:     level,
		Questions: []models.QuestionRecord{},
	}
	if b, ok := book.(*parser.Book); ok {
		res.BookName = b.Name
	}
	for _, r := range results {
		res.Questions = append(res.Questions, r.Records...)
		res.Diagnostics = append(res.Diagnostics, r.Diagnostics...)
	}
	return res
}

// LevelFromFilename derives the level from a file named PREFIX-<LEVEL>.<ext>:
// the token after the last dash of the file stem, e.g. "KELET-B1.xlsx" → B1.
func LevelFromFilename(path string) (models.Level, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	i := strings.LastIndex(stem, "-")
	if i < 0 {
		return "", ErrUnknownLevel
	}
	level, err := models.ParseLevel(stem[i+1:])
	if err != nil {
		return "", ErrUnknownLevel
	}
	return level, nil
}
