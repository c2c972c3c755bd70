package models

// OptionRecord is a single answer option of a question.
type OptionRecord struct {
	// Label is a single uppercase letter (A, B, C, ...).
	Label string `json:"label"`
	// Text is the option text.
	Text string `json:"text"`
	// IsCorrect marks the option as a correct answer.
	IsCorrect bool `json:"is_correct"`
}

// Provenance locates the block a question was extracted from.
type Provenance struct {
	// Sheet is the sheet display name.
	Sheet string `json:"sheet"`
	// Row is the first row of the block (1-based).
	Row int `json:"row"`
}

// QuestionRecord is a normalized question extracted from a workbook.
// Records are handed out by value and are not modified after assembly.
type QuestionRecord struct {
	// Level is the CEFR level of the workbook the question came from.
	Level Level `json:"level"`
	// Category is the sheet category (serialized as "type").
	Category Category `json:"type"`
	// Prompt is the question text, never empty.
	Prompt string `json:"prompt"`
	// Paragraph is the optional passage or context shown with the prompt.
	Paragraph *string `json:"paragraph,omitempty"`
	// Options are the answer options in source order.
	Options []OptionRecord `json:"options"`
	// Source is the sheet and row the block started at.
	Source Provenance `json:"source"`
}

// CorrectCount returns the number of options marked correct.
func (q QuestionRecord) CorrectCount() int {
	n := 0
	for _, o := range q.Options {
		if o.IsCorrect {
			n++
		}
	}
	return n
}

// HasParagraph reports whether the record carries a non-empty paragraph.
func (q QuestionRecord) HasParagraph() bool {
	return q.Paragraph != nil && *q.Paragraph != ""
}
