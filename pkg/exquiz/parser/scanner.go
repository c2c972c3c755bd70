package parser

import "github.com/ukaji3/exquiz-go/pkg/exquiz/models"

// SheetResult is the output of scanning one sheet.
type SheetResult struct {
	// Sheet is the sheet name.
	Sheet string
	// Category is empty when the sheet was skipped.
	Category models.Category
	// Records are the assembled questions in row order.
	Records []models.QuestionRecord
	// Diagnostics are the anomalies found in this sheet.
	Diagnostics []models.Diagnostic
}

// Scanner walks one sheet with a row cursor and dispatches numbered rows to
// the first applicable detector.
type Scanner struct {
	sheet     Sheet
	category  models.Category
	level     models.Level
	layout    Layout
	detectors []Detector

	row         int
	records     []models.QuestionRecord
	diagnostics []models.Diagnostic
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithLayout sets the column layout. Default is DefaultLayout().
func WithLayout(l Layout) ScannerOption {
	return func(s *Scanner) {
		s.layout = l
	}
}

// WithDetectors replaces the detector list. Order is priority order.
func WithDetectors(detectors ...Detector) ScannerOption {
	return func(s *Scanner) {
		s.detectors = detectors
	}
}

// NewScanner creates a Scanner for a sheet of a known category.
func NewScanner(sheet Sheet, category models.Category, level models.Level, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		sheet:     sheet,
		category:  category,
		level:     level,
		layout:    DefaultLayout(),
		detectors: DefaultDetectors(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run scans the sheet from row 1 until the cursor passes MaxRow.
func (s *Scanner) Run() ([]models.QuestionRecord, []models.Diagnostic) {
	maxRow := s.sheet.MaxRow()
	for s.row = 1; s.row <= maxRow; {
		if !isNumbered(s.sheet, s.row, s.layout) {
			s.row++
			continue
		}
		s.row += s.scanBlock()
	}
	return s.records, s.diagnostics
}

// scanBlock handles the numbered row at the cursor and returns how far to advance.
func (s *Scanner) scanBlock() int {
	b := &Block{
		Sheet:    s.sheet,
		Row:      s.row,
		Category: s.category,
		Layout:   s.layout,
	}

	det, ok := s.dispatch(b)
	if !ok {
		s.diagnostics = append(s.diagnostics, b.warn(models.KindStructural, b.Row, s.layout.NumberCol,
			"numbered row %q fits no known block layout; skipped", b.label(b.Row)))
		return 1
	}

	res := det.Extract(b)
	if res.Candidate != nil {
		src := models.Provenance{Sheet: s.sheet.Name(), Row: b.Row}
		if rec, ok := Assemble(*res.Candidate, s.level, s.category, src); ok {
			s.records = append(s.records, rec)
			s.diagnostics = append(s.diagnostics, res.Diagnostics...)
		} else {
			s.diagnostics = append(s.diagnostics, b.warn(models.KindEmptyPrompt, b.Row, s.layout.TextCol,
				"%s block has an empty prompt; dropped", det.Name))
		}
	} else {
		s.diagnostics = append(s.diagnostics, res.Diagnostics...)
	}

	if res.Consumed < 1 {
		return 1
	}
	return res.Consumed
}

func (s *Scanner) dispatch(b *Block) (Detector, bool) {
	for _, d := range s.detectors {
		if d.Applies(b) {
			return d, true
		}
	}
	return Detector{}, false
}

// ScanSheet classifies a sheet and scans it if its category is known.
// Unknown sheets produce no records and a single unknown-sheet warning.
func ScanSheet(sheet Sheet, level models.Level, opts ...ScannerOption) SheetResult {
	res := SheetResult{Sheet: sheet.Name()}
	category, ok := Classify(sheet.Name())
	if !ok {
		res.Diagnostics = []models.Diagnostic{
			models.Warning(models.KindUnknownSheet, sheet.Name(), nil,
				"sheet %q matches no category keyword; skipped", sheet.Name()),
		}
		return res
	}
	res.Category = category
	res.Records, res.Diagnostics = NewScanner(sheet, category, level, opts...).Run()
	return res
}
