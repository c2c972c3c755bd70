package parser

import (
	"strings"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"golang.org/x/text/cases"
)

// categoryKeywords is checked in order; the first keyword contained in the
// case-folded sheet name wins.
var categoryKeywords = []struct {
	keyword  string
	category models.Category
}{
	{"grammar", models.CategoryGrammar},
	{"vocabulary", models.CategoryVocabulary},
	{"reading", models.CategoryReading},
}

// Classify maps a sheet name to its content category.
// The second return value is false when no keyword matches.
func Classify(sheetName string) (models.Category, bool) {
	name := fold(sheetName)
	for _, k := range categoryKeywords {
		if strings.Contains(name, k.keyword) {
			return k.category, true
		}
	}
	return "", false
}

// fold returns the case-folded form of s. A Caser is not safe for concurrent
// use, so one is created per call.
func fold(s string) string {
	return cases.Fold().String(s)
}
