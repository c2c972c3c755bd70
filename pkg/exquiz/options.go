// Package exquiz extracts multiple-choice exam questions from loosely
// structured Excel workbooks.
package exquiz

import (
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/parser"
)

// DefaultPattern matches the exam workbook file names, e.g. "KELET-B1.xlsx".
const DefaultPattern = "KELET-*.xlsx"

// Options configures extraction behavior.
type Options struct {
	// Level overrides the level derived from the file name. Empty means derive.
	Level models.Level
	// Concurrency is the number of sheets (or files, in batch mode) scanned in
	// parallel. Values below 2 scan sequentially.
	Concurrency int
	// Layout names the columns of a question block.
	Layout parser.Layout
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{
		Concurrency: 1,
		Layout:      parser.DefaultLayout(),
	}
}

// workers returns the effective parallelism.
func (o Options) workers() int {
	if o.Concurrency < 1 {
		return 1
	}
	return o.Concurrency
}

// layout returns the configured layout, falling back to the default when unset.
func (o Options) layout() parser.Layout {
	if o.Layout == (parser.Layout{}) {
		return parser.DefaultLayout()
	}
	return o.Layout
}

// ResolveLevel returns the override level if set, otherwise the level derived
// from the file name.
func (o Options) ResolveLevel(path string) (models.Level, error) {
	if o.Level != "" {
		if !o.Level.Valid() {
			return "", ErrUnknownLevel
		}
		return o.Level, nil
	}
	return LevelFromFilename(path)
}
