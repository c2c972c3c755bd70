package parser

import (
	"regexp"
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	instructionPrefix = regexp.MustCompile(`(?i)^(complete the sentence|choose|select|fill in)`)
	// embeddedSplit separates options after the instruction colon. An ASCII
	// hyphen only separates when spaced, so "well-known" stays one option.
	embeddedSplit = regexp.MustCompile(`\s*[/\\•–—]\s*|\s+-\s+`)
)

const (
	// embeddedBlockRows is instruction + question + spacer + answer row.
	embeddedBlockRows = 4
	// embeddedAnswerOffset locates the answer row relative to the instruction row.
	embeddedAnswerOffset = 3

	// mcqBlockRows is instruction + question + four option rows.
	mcqBlockRows   = 6
	mcqFirstOption = 2
	mcqOptionRows  = 4
)

// embeddedOptions returns the lower-cased options listed after the last colon
// of an instruction, or nil if there are fewer than two.
func embeddedOptions(instruction string) []string {
	i := strings.LastIndex(instruction, ":")
	if i < 0 {
		return nil
	}
	lower := cases.Lower(language.Und)
	var out []string
	for _, part := range embeddedSplit.Split(instruction[i+1:], -1) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, lower.String(part))
		}
	}
	if len(out) < 2 {
		return nil
	}
	return out
}

func isOptionInstruction(s string) bool {
	return instructionPrefix.MatchString(s) || embeddedOptions(s) != nil
}

func instructionDetector() Detector {
	return Detector{
		Name: "instruction",
		Applies: func(b *Block) bool {
			if !isOptionInstruction(b.Prompt()) || b.text(b.Row+1) == "" || b.optionRow(b.Row+1) {
				return false
			}
			if embeddedOptions(b.Prompt()) != nil {
				return true
			}
			for off := mcqFirstOption; off < mcqFirstOption+mcqOptionRows; off++ {
				if b.text(b.Row+off) != "" {
					return true
				}
			}
			return false
		},
		Extract: extractInstruction,
	}
}

func extractInstruction(b *Block) Detection {
	if embedded := embeddedOptions(b.Prompt()); embedded != nil {
		return extractEmbedded(b, embedded)
	}
	return extractMCQ(b)
}

func extractEmbedded(b *Block, embedded []string) Detection {
	options := make([]models.OptionRecord, len(embedded))
	for i, text := range embedded {
		options[i] = models.OptionRecord{Label: letter(i), Text: text}
	}
	answer := b.text(b.Row + embeddedAnswerOffset)
	resolved, diags := b.resolve(options, Evidence{Answer: answer})
	return Detection{
		Candidate:   &Candidate{Prompt: b.text(b.Row + 1), Options: resolved},
		Consumed:    embeddedBlockRows,
		Diagnostics: diags,
	}
}

func extractMCQ(b *Block) Detection {
	var (
		diags   []models.Diagnostic
		options []models.OptionRecord
		bold    []bool
		seen    = make(map[string]bool)
	)
	for i := 0; i < mcqOptionRows; i++ {
		row := b.Row + mcqFirstOption + i
		text := b.text(row)
		if text == "" {
			continue
		}
		label, ok := optionLabel(b.label(row))
		if !ok {
			label = letter(i)
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

	answer := b.Sheet.ValueAt(b.Row+1, b.Layout.AnswerCol)
	resolved, resolveDiags := b.resolve(options, Evidence{Bold: bold, Answer: answer})
	return Detection{
		Candidate:   &Candidate{Prompt: b.text(b.Row + 1), Options: resolved},
		Consumed:    mcqBlockRows,
		Diagnostics: append(diags, resolveDiags...),
	}
}
