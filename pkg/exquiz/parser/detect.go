package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// questionNumber matches the number cell that opens a block ("1.", "25.").
var questionNumber = regexp.MustCompile(`^\d+\.`)

// Candidate is a question extracted by a detector, before assembly.
type Candidate struct {
	Prompt    string
	Paragraph string
	Options   []models.OptionRecord
}

// Detection is what a detector reports for one block.
type Detection struct {
	// Candidate is nil when the block produced no question.
	Candidate *Candidate
	// Consumed is the number of rows the block occupied, starting at the numbered row.
	Consumed int
	// Diagnostics are anomalies found inside the block.
	Diagnostics []models.Diagnostic
}

// Detector recognizes and extracts one block layout.
type Detector struct {
	// Name identifies the layout in diagnostics and tests.
	Name string
	// Applies reports whether the layout fits the block.
	Applies func(b *Block) bool
	// Extract consumes the block. It is only called when Applies returned true.
	Extract func(b *Block) Detection
}

// DefaultDetectors returns the detectors in priority order.
func DefaultDetectors() []Detector {
	return []Detector{
		prepositionDetector(),
		fixedFourDetector(),
		readingDetector(),
		instructionDetector(),
	}
}

// Block is the scanner's view of a numbered row and the rows below it.
type Block struct {
	Sheet    Sheet
	Row      int
	Category models.Category
	Layout   Layout
}

// Prompt returns the text of the numbered row.
func (b *Block) Prompt() string {
	return b.Sheet.ValueAt(b.Row, b.Layout.TextCol)
}

// text returns the text column at row.
func (b *Block) text(row int) string {
	return b.Sheet.ValueAt(row, b.Layout.TextCol)
}

// label returns the number/label column at row.
func (b *Block) label(row int) string {
	return b.Sheet.ValueAt(row, b.Layout.NumberCol)
}

// numbered reports whether row opens a question block.
func (b *Block) numbered(row int) bool {
	return isNumbered(b.Sheet, row, b.Layout)
}

// optionRow reports whether row carries an option label.
func (b *Block) optionRow(row int) bool {
	_, ok := optionLabel(b.label(row))
	return ok
}

func (b *Block) warn(kind models.DiagnosticKind, row, col int, format string, args ...any) models.Diagnostic {
	return models.Warning(kind, b.Sheet.Name(), models.At(row, col), format, args...)
}

func isNumbered(s Sheet, row int, l Layout) bool {
	return questionNumber.MatchString(s.ValueAt(row, l.NumberCol))
}

// optionLabel normalizes an option label cell ("a", "B.", "c)", "(d)") to a
// single uppercase letter.
func optionLabel(s string) (string, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimRight(s, ".)")
	if utf8.RuneCountInString(s) != 1 {
		return "", false
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r > unicode.MaxASCII || !unicode.IsLetter(r) {
		return "", false
	}
	return string(unicode.ToUpper(r)), true
}

// letter returns the i-th option label: A, B, C, ...
func letter(i int) string {
	return string(rune('A' + i))
}

// isShortWord reports whether s is a single alphabetic token of at most 5 letters.
func isShortWord(s string) bool {
	n := utf8.RuneCountInString(s)
	if n == 0 || n > 5 {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
