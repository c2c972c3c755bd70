// Package analytics computes statistics and validity checks over extracted
// question records. All functions are pure; none of them modify their input.
package analytics

import (
	"unicode/utf8"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// Analyze computes the AnalyticsReport of a finished record set.
func Analyze(records []models.QuestionRecord) models.AnalyticsReport {
	acc := NewAccumulator()
	acc.Add(records...)
	return acc.Report()
}

// Accumulator builds an AnalyticsReport incrementally, e.g. across the files
// of a batch. It is not safe for concurrent use.
type Accumulator struct {
	total          int
	prompts        map[string]int
	maxPrompt      int
	maxOption      int
	optionCounts   map[int]int
	missingCorrect int
}

// NewAccumulator creates an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		prompts:      make(map[string]int),
		optionCounts: make(map[int]int),
	}
}

// Add folds records into the running totals.
func (a *Accumulator) Add(records ...models.QuestionRecord) {
	for _, q := range records {
		a.total++
		a.prompts[q.Prompt]++
		if n := utf8.RuneCountInString(q.Prompt); n > a.maxPrompt {
			a.maxPrompt = n
		}
		for _, o := range q.Options {
			if n := utf8.RuneCountInString(o.Text); n > a.maxOption {
				a.maxOption = n
			}
		}
		a.optionCounts[len(q.Options)]++
		if q.CorrectCount() == 0 {
			a.missingCorrect++
		}
	}
}

// Report returns a snapshot of the totals. The returned maps are fresh copies.
func (a *Accumulator) Report() models.AnalyticsReport {
	r := models.AnalyticsReport{
		Total:                   a.total,
		DuplicatePrompts:        make(map[string]int),
		MaxPromptLength:         a.maxPrompt,
		MaxOptionTextLength:     a.maxOption,
		OptionCountDistribution: make(map[int]int, len(a.optionCounts)),
		MissingCorrectCount:     a.missingCorrect,
	}
	for prompt, n := range a.prompts {
		if n > 1 {
			r.DuplicatePrompts[prompt] = n
		}
	}
	for count, freq := range a.optionCounts {
		r.OptionCountDistribution[count] = freq
	}
	return r
}
