// Package output renders extraction results as JSON and Markdown.
package output

import (
	"encoding/json"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// ToJSON serializes a workbook result.
func ToJSON(wb *models.WorkbookResult, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// QuestionsToJSON serializes records as a JSON array in the question import
// format (type, level, prompt, paragraph, options).
func QuestionsToJSON(records []models.QuestionRecord, pretty bool) ([]byte, error) {
	if records == nil {
		records = []models.QuestionRecord{}
	}
	return marshal(records, pretty)
}

// ReportToJSON serializes an analytics report.
func ReportToJSON(r models.AnalyticsReport, pretty bool) ([]byte, error) {
	return marshal(r, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
