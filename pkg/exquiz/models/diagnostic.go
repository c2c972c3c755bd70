package models

import "fmt"

// Severity is the severity of a Diagnostic.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// DiagnosticKind classifies a parsing anomaly.
type DiagnosticKind string

const (
	// KindStructural: a numbered row fit no detector, or a block was malformed.
	KindStructural DiagnosticKind = "structural"
	// KindAmbiguousAnswer: neither bold styling nor an answer token resolved the block.
	KindAmbiguousAnswer DiagnosticKind = "ambiguous_answer"
	// KindUnknownSheet: the sheet name matched no category keyword.
	KindUnknownSheet DiagnosticKind = "unknown_sheet"
	// KindEmptyPrompt: a candidate block had no prompt text and was dropped.
	KindEmptyPrompt DiagnosticKind = "empty_prompt"
	// KindWorkbookOpen: the workbook could not be read at all.
	KindWorkbookOpen DiagnosticKind = "workbook_open"
)

// Diagnostic is a non-fatal record of a parsing anomaly.
type Diagnostic struct {
	// Severity is warning or error.
	Severity Severity `json:"severity"`
	// Kind classifies the anomaly.
	Kind DiagnosticKind `json:"kind"`
	// Message is a human-readable description.
	Message string `json:"message"`
	// Book is the workbook file name, set by the batch layer.
	Book string `json:"book,omitempty"`
	// Sheet is the sheet name, if the anomaly is sheet-scoped.
	Sheet string `json:"sheet,omitempty"`
	// Location is the cell the anomaly refers to (optional).
	Location *CellAddress `json:"location,omitempty"`
}

// Warning creates a warning-level Diagnostic.
func Warning(kind DiagnosticKind, sheet string, loc *CellAddress, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: SeverityWarning,
		Kind:     kind,
		Message:  fmt.Sprintf(format, args...),
		Sheet:    sheet,
		Location: loc,
	}
}

// At returns a pointer to the address (row, col), for use as a Diagnostic location.
func At(row, col int) *CellAddress {
	return &CellAddress{Row: row, Col: col}
}

// String formats the diagnostic as "sheet!C12: message".
func (d Diagnostic) String() string {
	where := d.Sheet
	if d.Location != nil {
		if where != "" {
			where += "!"
		}
		where += d.Location.String()
	}
	if d.Book != "" {
		where = d.Book + ":" + where
	}
	if where == "" {
		return fmt.Sprintf("[%s] %s", d.Kind, d.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", where, d.Kind, d.Message)
}
