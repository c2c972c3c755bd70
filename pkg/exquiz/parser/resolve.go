package parser

import (
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// Resolution reports which evidence decided correctness.
type Resolution int

const (
	// Unresolved means no option could be marked correct.
	Unresolved Resolution = iota
	// ByBold means correctness was taken from bold styling.
	ByBold
	// ByAnswer means correctness was taken from a textual answer token.
	ByAnswer
)

func (r Resolution) String() string {
	switch r {
	case ByBold:
		return "bold"
	case ByAnswer:
		return "answer"
	default:
		return "unresolved"
	}
}

// Evidence is the correctness evidence available for a block.
type Evidence struct {
	// Bold holds the bold flag of each option's text cell, index-aligned with
	// the options. Nil when the layout has no per-option styling.
	Bold []bool
	// Answer is a textual answer token, empty when none was found.
	Answer string
}

// Resolve marks options correct using the bold-wins policy: if any option is
// bold, correctness is exactly the bold flags; otherwise an option is correct
// when its text (or, failing that, its label) equals the answer token,
// case-insensitively. The input slice is not modified.
func Resolve(options []models.OptionRecord, ev Evidence) ([]models.OptionRecord, Resolution) {
	out := make([]models.OptionRecord, len(options))
	copy(out, options)
	for i := range out {
		out[i].IsCorrect = false
	}

	anyBold := false
	for i := range out {
		if i < len(ev.Bold) && ev.Bold[i] {
			anyBold = true
			break
		}
	}
	if anyBold {
		for i := range out {
			out[i].IsCorrect = i < len(ev.Bold) && ev.Bold[i]
		}
		return out, ByBold
	}

	token := normalizeAnswer(ev.Answer)
	if token == "" {
		return out, Unresolved
	}
	matched := false
	for i := range out {
		if fold(out[i].Text) == token {
			out[i].IsCorrect = true
			matched = true
		}
	}
	if !matched {
		if label, ok := optionLabel(ev.Answer); ok {
			for i := range out {
				if out[i].Label == label {
					out[i].IsCorrect = true
					matched = true
				}
			}
		}
	}
	if !matched {
		return out, Unresolved
	}
	return out, ByAnswer
}

// normalizeAnswer trims wrapping punctuation from an answer token and folds its case.
func normalizeAnswer(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimRight(s, ".)")
	return fold(strings.TrimSpace(s))
}

// resolve applies Resolve and emits one ambiguous-answer warning, located at
// the block's numbered row, when nothing could be resolved.
func (b *Block) resolve(options []models.OptionRecord, ev Evidence) ([]models.OptionRecord, []models.Diagnostic) {
	resolved, how := Resolve(options, ev)
	if how != Unresolved {
		return resolved, nil
	}
	var d models.Diagnostic
	if strings.TrimSpace(ev.Answer) == "" {
		d = b.warn(models.KindAmbiguousAnswer, b.Row, b.Layout.NumberCol,
			"no bold option and no answer token; no option marked correct")
	} else {
		d = b.warn(models.KindAmbiguousAnswer, b.Row, b.Layout.NumberCol,
			"answer %q matches no option; no option marked correct", ev.Answer)
	}
	return resolved, []models.Diagnostic{d}
}
