package analytics

import "github.com/ukaji3/exquiz-go/pkg/exquiz/models"

const (
	minColumnSize  = 255
	columnHeadroom = 10
)

// ColumnSizes are suggested maximum lengths for storage columns.
type ColumnSizes struct {
	Prompt int `json:"prompt"`
	Option int `json:"option"`
}

// SuggestColumnSizes sizes prompt and option columns from observed lengths,
// never below 255 characters.
func SuggestColumnSizes(r models.AnalyticsReport) ColumnSizes {
	return ColumnSizes{
		Prompt: max(minColumnSize, r.MaxPromptLength+columnHeadroom),
		Option: max(minColumnSize, r.MaxOptionTextLength+columnHeadroom),
	}
}
