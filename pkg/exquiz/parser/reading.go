package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

var (
	readingInstruction = regexp.MustCompile(`(?i)read\s+the\s+(paragraph|article)`)
	// blockMarker ends the paragraph; trailing text on the marker line is the question.
	blockMarker = regexp.MustCompile(`(?i)^(complete the sentence:|question:|answer the questions?\.)\s*(.*)$`)
	// answerLine is an optional "Answer: b" row after the options.
	answerLine = regexp.MustCompile(`(?i)^(?:correct\s+)?answer\s*[:–—-]\s*(.+)$`)
)

// readingLabels is the expected label sequence of reading options.
const readingLabels = "abcde"

func isReadingInstruction(s string) bool {
	return readingInstruction.MatchString(s)
}

func readingDetector() Detector {
	return Detector{
		Name: "reading",
		Applies: func(b *Block) bool {
			return isReadingInstruction(b.Prompt())
		},
		Extract: extractReading,
	}
}

func extractReading(b *Block) Detection {
	maxRow := b.Sheet.MaxRow()

	// Paragraph lines run until a block marker. A numbered row or the end of
	// the sheet before a marker means the block is malformed.
	row := b.Row + 1
	markerRow := 0
	var lines []string
	for ; row <= maxRow; row++ {
		if b.numbered(row) {
			break
		}
		t := b.text(row)
		if t == "" {
			continue
		}
		if blockMarker.MatchString(t) {
			markerRow = row
			break
		}
		lines = append(lines, t)
	}
	if markerRow == 0 {
		return Detection{
			Consumed: row - b.Row,
			Diagnostics: []models.Diagnostic{b.warn(models.KindStructural, b.Row, b.Layout.TextCol,
				"reading block has no question marker before row %d", row)},
		}
	}

	question := strings.TrimSpace(blockMarker.FindStringSubmatch(b.text(markerRow))[2])
	row = markerRow + 1
	if question == "" {
		for ; row <= maxRow; row++ {
			if b.numbered(row) || b.optionRow(row) {
				break
			}
			if t := b.text(row); t != "" {
				question = t
				row++
				break
			}
		}
	}

	var (
		options []models.OptionRecord
		bold    []bool
	)
	for i := 0; i < len(readingLabels) && row <= maxRow; i++ {
		label, ok := optionLabel(b.label(row))
		text := b.text(row)
		if !ok || !strings.EqualFold(label, readingLabels[i:i+1]) || text == "" {
			break
		}
		options = append(options, models.OptionRecord{Label: label, Text: text})
		bold = append(bold, b.Sheet.IsBoldAt(row, b.Layout.TextCol))
		row++
	}

	answer := ""
	if row <= maxRow && b.label(row) == "" {
		if m := answerLine.FindStringSubmatch(b.text(row)); m != nil {
			answer = m[1]
			row++
		}
	}

	resolved, diags := b.resolve(options, Evidence{Bold: bold, Answer: answer})
	return Detection{
		Candidate: &Candidate{
			Prompt:    question,
			Paragraph: strings.Join(lines, "\n"),
			Options:   resolved,
		},
		Consumed:    row - b.Row,
		Diagnostics: diags,
	}
}
