package parser

import "github.com/ukaji3/exquiz-go/pkg/exquiz/models"

const (
	fixedOptionRows = 4
	// fixedBlockRows is prompt + four option rows + one spacer row. The block
	// always advances by this amount, however many option rows were filled.
	fixedBlockRows = 6
)

func fixedFourDetector() Detector {
	return Detector{
		Name: "fixed-four",
		Applies: func(b *Block) bool {
			p := b.Prompt()
			if isReadingInstruction(p) {
				return false
			}
			// A labelled option directly below wins over an instruction-like prompt.
			if b.optionRow(b.Row + 1) {
				return true
			}
			if isOptionInstruction(p) {
				return false
			}
			// Default layout for grammar and vocabulary, even with no options filled in.
			if b.Category == models.CategoryGrammar || b.Category == models.CategoryVocabulary {
				return true
			}
			for off := 2; off <= fixedOptionRows; off++ {
				if b.optionRow(b.Row + off) {
					return true
				}
			}
			return false
		},
		Extract: extractFixedFour,
	}
}

func extractFixedFour(b *Block) Detection {
	var diags []models.Diagnostic

	paragraph := ""
	if prev := b.Row - 1; prev > 1 && !b.numbered(prev) && !b.optionRow(prev) {
		paragraph = b.text(prev)
	}

	var (
		options []models.OptionRecord
		bold    []bool
		seen    = make(map[string]bool)
	)
	for off := 1; off <= fixedOptionRows; off++ {
		row := b.Row + off
		label, ok := optionLabel(b.label(row))
		text := b.text(row)
		if !ok || text == "" {
			continue
		}
		if seen[label] {
			diags = append(diags, b.warn(models.KindStructural, row, b.Layout.NumberCol,
				"duplicate option label %q skipped", label))
			continue
		}
		seen[label] = true
		options = append(options, models.OptionRecord{Label: label, Text: text})
		bold = append(bold, b.Sheet.IsBoldAt(row, b.Layout.TextCol))
	}

	resolved, resolveDiags := b.resolve(options, Evidence{Bold: bold})
	return Detection{
		Candidate: &Candidate{
			Prompt:    b.Prompt(),
			Paragraph: paragraph,
			Options:   resolved,
		},
		Consumed:    fixedBlockRows,
		Diagnostics: append(diags, resolveDiags...),
	}
}
