package models

// WorkbookResult is the outcome of extracting one workbook.
type WorkbookResult struct {
	// BookName is the workbook file name (no path).
	BookName string `json:"book_name"`
	// Level is the level derived from the file name (or overridden).
	Level Level `json:"level"`
	// Questions are the extracted records in sheet declaration and row order.
	Questions []QuestionRecord `json:"questions"`
	// Diagnostics are the non-fatal anomalies found while scanning.
	Diagnostics []Diagnostic `json:"diagnostics,omitempty"`
}

// WarningCount returns the number of warning-level diagnostics.
func (w *WorkbookResult) WarningCount() int {
	n := 0
	for _, d := range w.Diagnostics {
		if d.Severity == SeverityWarning {
			n++
		}
	}
	return n
}
