package parser

import (
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// Assemble turns a candidate into an immutable QuestionRecord. It returns
// false when the prompt is empty; such candidates are never emitted.
func Assemble(c Candidate, level models.Level, category models.Category, src models.Provenance) (models.QuestionRecord, bool) {
	prompt := strings.TrimSpace(c.Prompt)
	if prompt == "" {
		return models.QuestionRecord{}, false
	}

	rec := models.QuestionRecord{
		Level:    level,
		Category: category,
		Prompt:   prompt,
		Options:  make([]models.OptionRecord, len(c.Options)),
		Source:   src,
	}
	copy(rec.Options, c.Options)
	if p := strings.TrimSpace(c.Paragraph); p != "" {
		rec.Paragraph = &p
	}
	return rec, true
}
