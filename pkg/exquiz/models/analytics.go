package models

// AnalyticsReport aggregates statistics over a finished set of records.
type AnalyticsReport struct {
	// Total is the number of records analysed.
	Total int `json:"total"`
	// DuplicatePrompts maps a prompt to its count, only for counts > 1.
	DuplicatePrompts map[string]int `json:"duplicate_prompts"`
	// MaxPromptLength is the longest prompt, in characters.
	MaxPromptLength int `json:"max_prompt_length"`
	// MaxOptionTextLength is the longest option text, in characters.
	MaxOptionTextLength int `json:"max_option_text_length"`
	// OptionCountDistribution maps an option count to the number of records with it.
	OptionCountDistribution map[int]int `json:"option_count_distribution"`
	// MissingCorrectCount is the number of records with no correct option.
	MissingCorrectCount int `json:"missing_correct_count"`
}
