package analytics

import "github.com/ukaji3/exquiz-go/pkg/exquiz/models"

// Problem is a validity problem a downstream consumer may reject a record for.
type Problem string

const (
	ProblemNoOptions Problem = "no_options"
	ProblemNoCorrect Problem = "no_correct_option"
)

// Issue pairs a record with its validity problem.
type Issue struct {
	Record  models.QuestionRecord
	Problem Problem
}

// Validate returns the records that have no options or no correct option,
// in input order. The extraction engine does not enforce these rules itself.
func Validate(records []models.QuestionRecord) []Issue {
	var issues []Issue
	for _, q := range records {
		switch {
		case len(q.Options) == 0:
			issues = append(issues, Issue{Record: q, Problem: ProblemNoOptions})
		case q.CorrectCount() == 0:
			issues = append(issues, Issue{Record: q, Problem: ProblemNoCorrect})
		}
	}
	return issues
}

// IsValid reports whether a record has at least one option and one correct option.
func IsValid(q models.QuestionRecord) bool {
	return len(q.Options) > 0 && q.CorrectCount() > 0
}
