package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// B, C and D in the default layout.
const (
	colNum  = 2
	colText = 3
	colAns  = 4
)

func correctLabels(q models.QuestionRecord) []string {
	var out []string
	for _, o := range q.Options {
		if o.IsCorrect {
			out = append(out, o.Label)
		}
	}
	return out
}

func optionTexts(q models.QuestionRecord) []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Text
	}
	return out
}

func diagnosticsOfKind(diags []models.Diagnostic, kind models.DiagnosticKind) []models.Diagnostic {
	var out []models.Diagnostic
	for _, d := range diags {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

func TestScanSheet_PrepositionList(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "AT – FOR - IN – OF – ON – TO - WITH", false).
		Set(3, colText, "TO", false).
		Set(5, colNum, "2.", false).
		Set(5, colText, "IN - ON - AT", false).
		Set(6, colText, "at", false)

	res := ScanSheet(g, models.LevelB1)

	require.Len(t, res.Records, 2)
	q := res.Records[0]
	assert.Equal(t, models.CategoryGrammar, q.Category)
	assert.Equal(t, models.LevelB1, q.Level)
	assert.Equal(t, []string{"AT", "FOR", "IN", "OF", "ON", "TO", "WITH"}, optionTexts(q))
	assert.Equal(t, "G", q.Options[6].Label)
	assert.Equal(t, []string{"F"}, correctLabels(q))
	assert.Nil(t, q.Paragraph)
	assert.Equal(t, models.Provenance{Sheet: "Grammar", Row: 1}, q.Source)

	assert.Equal(t, 5, res.Records[1].Source.Row)
	assert.Equal(t, []string{"C"}, correctLabels(res.Records[1]))
	assert.Empty(t, res.Diagnostics)
}

func TestScanSheet_PrepositionWithoutAnswer(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "AT - ON - IN", false).
		Set(3, colNum, "2.", false).
		Set(3, colText, "IN / ON / AT", false).
		Set(4, colText, "ON", false)

	res := ScanSheet(g, models.LevelA2)

	require.Len(t, res.Records, 2)
	assert.Empty(t, correctLabels(res.Records[0]))
	assert.Equal(t, []string{"B"}, correctLabels(res.Records[1]))
	assert.Equal(t, 3, res.Records[1].Source.Row)

	ambiguous := diagnosticsOfKind(res.Diagnostics, models.KindAmbiguousAnswer)
	require.Len(t, ambiguous, 1)
	require.NotNil(t, ambiguous[0].Location)
	assert.Equal(t, 1, ambiguous[0].Location.Row)
	assert.Equal(t, "Grammar", ambiguous[0].Sheet)
	assert.Equal(t, models.SeverityWarning, ambiguous[0].Severity)
}

func TestScanSheet_BoldWinsOverAnswerCell(t *testing.T) {
	g := NewGrid("Vocabulary").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Choose the correct word.", false).
		Set(2, colText, "She ___ a doctor.", false).
		Set(2, colAns, "C", false).
		Set(3, colNum, "A", false).Set(3, colText, "is", false).
		Set(4, colNum, "B", false).Set(4, colText, "are", true).
		Set(5, colNum, "C", false).Set(5, colText, "am", false).
		Set(6, colNum, "D", false).Set(6, colText, "be", false)

	res := ScanSheet(g, models.LevelA1)

	require.Len(t, res.Records, 1)
	q := res.Records[0]
	assert.Equal(t, "She ___ a doctor.", q.Prompt)
	assert.Equal(t, models.CategoryVocabulary, q.Category)
	assert.Equal(t, []string{"B"}, correctLabels(q))
	assert.Equal(t, 1, q.CorrectCount())
	assert.Empty(t, res.Diagnostics)
}

func TestScanSheet_AnswerCellWithoutBold(t *testing.T) {
	g := NewGrid("Vocabulary").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Choose the correct word.", false).
		Set(2, colText, "They ___ at home.", false).
		Set(2, colAns, "c", false).
		Set(3, colNum, "A", false).Set(3, colText, "is", false).
		Set(4, colNum, "B", false).Set(4, colText, "be", false).
		Set(5, colNum, "C", false).Set(5, colText, "are", false).
		Set(6, colNum, "D", false).Set(6, colText, "am", false)

	res := ScanSheet(g, models.LevelA1)

	require.Len(t, res.Records, 1)
	assert.Equal(t, []string{"C"}, correctLabels(res.Records[0]))
	assert.Empty(t, res.Diagnostics)
}

func TestScanSheet_PartialFixedBlockAdvancesSixRows(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "I ___ to school every day.", false).
		Set(2, colNum, "A", false).Set(2, colText, "go", true).
		Set(3, colNum, "B", false).Set(3, colText, "goes", false).
		Set(4, colNum, "C", false).
		Set(5, colNum, "D", false).Set(5, colText, "going", false).
		Set(7, colNum, "2.", false).
		Set(7, colText, "He ___ happy.", false).
		Set(8, colNum, "A", false).Set(8, colText, "is", true).
		Set(9, colNum, "B", false).Set(9, colText, "are", false)

	b := &Block{Sheet: g, Row: 1, Category: models.CategoryGrammar, Layout: DefaultLayout()}
	assert.Equal(t, fixedBlockRows, extractFixedFour(b).Consumed)

	res := ScanSheet(g, models.LevelA1)

	require.Len(t, res.Records, 2)
	first := res.Records[0]
	assert.Equal(t, []string{"go", "goes", "going"}, optionTexts(first))
	assert.Equal(t, "D", first.Options[2].Label)
	assert.Equal(t, []string{"A"}, correctLabels(first))
	assert.Equal(t, 7, res.Records[1].Source.Row)
	assert.Equal(t, []string{"is", "are"}, optionTexts(res.Records[1]))
	assert.Empty(t, res.Diagnostics)
}

func TestScanSheet_FixedBlockParagraph(t *testing.T) {
	g := NewGrid("Grammar").
		Set(2, colText, "Tom lives in London.", false).
		Set(3, colNum, "1.", false).
		Set(3, colText, "Where does Tom live?", false).
		Set(4, colNum, "A", false).Set(4, colText, "Paris", false).
		Set(5, colNum, "B", false).Set(5, colText, "London", true).
		Set(6, colNum, "C", false).Set(6, colText, "Rome", false).
		Set(7, colNum, "D", false).Set(7, colText, "Oslo", false)

	res := ScanSheet(g, models.LevelA2)

	require.Len(t, res.Records, 1)
	q := res.Records[0]
	require.True(t, q.HasParagraph())
	assert.Equal(t, "Tom lives in London.", *q.Paragraph)
	assert.Equal(t, []string{"B"}, correctLabels(q))
}

func TestScanSheet_DuplicateLabelSkipped(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "We ___ friends.", false).
		Set(2, colNum, "A", false).Set(2, colText, "are", true).
		Set(3, colNum, "a.", false).Set(3, colText, "is", false).
		Set(4, colNum, "B", false).Set(4, colText, "am", false).
		Set(5, colNum, "C", false).Set(5, colText, "be", false)

	res := ScanSheet(g, models.LevelA1)

	require.Len(t, res.Records, 1)
	q := res.Records[0]
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	assert.Equal(t, []string{"A", "B", "C"}, labels)

	structural := diagnosticsOfKind(res.Diagnostics, models.KindStructural)
	require.Len(t, structural, 1)
	assert.Equal(t, "B3", structural[0].Location.String())
}

func TestScanSheet_ReadingStopsAtLabelGap(t *testing.T) {
	g := NewGrid("Reading").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Read the paragraph and answer the question.", false).
		Set(2, colText, "Anna works in a bakery.", false).
		Set(3, colText, "She starts at six.", false).
		Set(4, colText, "Question: When does Anna start work?", false).
		Set(5, colNum, "a", false).Set(5, colText, "at five", false).
		Set(6, colNum, "b", false).Set(6, colText, "at six", true).
		Set(7, colNum, "c", false).Set(7, colText, "at seven", false).
		Set(8, colNum, "e", false).Set(8, colText, "at eight", false).
		Set(9, colNum, "e", false).Set(9, colText, "at nine", false).
		Set(10, colNum, "2.", false).
		Set(10, colText, "Read the article below.", false).
		Set(11, colText, "The museum opens at nine.", false).
		Set(12, colText, "Question: When does the museum open?", false).
		Set(13, colNum, "a", false).Set(13, colText, "at nine", false).
		Set(14, colNum, "b", false).Set(14, colText, "at ten", false).
		Set(15, colText, "Answer: a", false)

	b := &Block{Sheet: g, Row: 1, Category: models.CategoryReading, Layout: DefaultLayout()}
	det := extractReading(b)
	assert.Equal(t, 7, det.Consumed, "resumes at the row after option c")

	res := ScanSheet(g, models.LevelB2)

	require.Len(t, res.Records, 2)
	first := res.Records[0]
	assert.Equal(t, models.CategoryReading, first.Category)
	assert.Equal(t, "When does Anna start work?", first.Prompt)
	require.NotNil(t, first.Paragraph)
	assert.Equal(t, "Anna works in a bakery.\nShe starts at six.", *first.Paragraph)
	assert.Equal(t, []string{"at five", "at six", "at seven"}, optionTexts(first))
	assert.Equal(t, []string{"B"}, correctLabels(first))

	second := res.Records[1]
	assert.Equal(t, 10, second.Source.Row)
	assert.Equal(t, "When does the museum open?", second.Prompt)
	assert.Equal(t, []string{"A"}, correctLabels(second))
	assert.Empty(t, res.Diagnostics)
}

func TestScanSheet_ReadingWithoutMarker(t *testing.T) {
	g := NewGrid("Reading").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Read the paragraph.", false).
		Set(2, colText, "A paragraph with no question.", false).
		Set(3, colNum, "2.", false).
		Set(3, colText, "Read the paragraph.", false).
		Set(4, colText, "Cats sleep a lot.", false).
		Set(5, colText, "Question: What do cats do?", false).
		Set(6, colNum, "a", false).Set(6, colText, "sleep", true).
		Set(7, colNum, "b", false).Set(7, colText, "swim", false)

	res := ScanSheet(g, models.LevelA2)

	require.Len(t, res.Records, 1)
	assert.Equal(t, 3, res.Records[0].Source.Row)
	structural := diagnosticsOfKind(res.Diagnostics, models.KindStructural)
	require.Len(t, structural, 1)
	assert.Equal(t, 1, structural[0].Location.Row)
}

func TestScanSheet_EmbeddedInstruction(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Complete the sentence: AT / IN / ON", false).
		Set(2, colText, "We meet ___ Monday.", false).
		Set(4, colText, "on", false)

	res := ScanSheet(g, models.LevelA1)

	require.Len(t, res.Records, 1)
	q := res.Records[0]
	assert.Equal(t, "We meet ___ Monday.", q.Prompt)
	assert.Equal(t, []string{"at", "in", "on"}, optionTexts(q))
	assert.Equal(t, []string{"C"}, correctLabels(q))
	assert.Empty(t, res.Diagnostics)
}

func TestScanSheet_EmptyPromptDropped(t *testing.T) {
	g := NewGrid("Reading").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Read the paragraph.", false).
		Set(2, colText, "Some text.", false).
		Set(3, colText, "Question:", false).
		Set(4, colNum, "a", false).Set(4, colText, "yes", true).
		Set(5, colNum, "b", false).Set(5, colText, "no", false)

	res := ScanSheet(g, models.LevelA2)

	assert.Empty(t, res.Records)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.KindEmptyPrompt, res.Diagnostics[0].Kind)
}

func TestScanSheet_UnmatchedBlock(t *testing.T) {
	g := NewGrid("Reading").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Just a sentence.", false)

	res := ScanSheet(g, models.LevelA1)

	assert.Empty(t, res.Records)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.KindStructural, res.Diagnostics[0].Kind)
	assert.Contains(t, res.Diagnostics[0].Message, "fits no known block layout")
}

func TestScanSheet_InstructionPromptOnLabelledBlock(t *testing.T) {
	tests := []struct {
		sheet   string
		prompt  string
		options []string
		bold    int
	}{
		{"Grammar", "Choose the correct word.", []string{"go", "goes", "went", "gone"}, 1},
		{"Vocabulary", "He said: yes/no, he would come.", []string{"truth", "joke", "lie", "secret"}, 1},
		{"Grammar", "Complete the sentence: I ___ here.", []string{"am", "is", "are", "be"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			g := NewGrid(tt.sheet).
				Set(1, colNum, "1.", false).
				Set(1, colText, tt.prompt, false).
				Set(2, colAns, "joke", false)
			for i, text := range tt.options {
				g.Set(2+i, colNum, letter(i), false).Set(2+i, colText, text, i == tt.bold)
			}

			res := ScanSheet(g, models.LevelB1)

			require.Len(t, res.Records, 1)
			q := res.Records[0]
			assert.Equal(t, tt.prompt, q.Prompt)
			assert.Equal(t, tt.options, optionTexts(q))
			assert.Equal(t, []string{letter(tt.bold)}, correctLabels(q))
			assert.Empty(t, res.Diagnostics)
		})
	}
}

func TestScanSheet_DefaultBlockWithoutOptions(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "Write a sentence about your holiday.", false).
		Set(7, colNum, "2.", false).
		Set(7, colText, "Describe your house.", false)

	res := ScanSheet(g, models.LevelA2)

	require.Len(t, res.Records, 2)
	for _, q := range res.Records {
		assert.Empty(t, q.Options)
		assert.Zero(t, q.CorrectCount())
	}
	assert.Equal(t, "Write a sentence about your holiday.", res.Records[0].Prompt)
	assert.Equal(t, 7, res.Records[1].Source.Row)
	assert.Empty(t, diagnosticsOfKind(res.Diagnostics, models.KindStructural))

	b := &Block{Sheet: g, Row: 1, Category: models.CategoryGrammar, Layout: DefaultLayout()}
	assert.Equal(t, fixedBlockRows, extractFixedFour(b).Consumed)
}

func TestScanSheet_UnknownSheet(t *testing.T) {
	g := NewGrid("Instructions").
		Set(1, colNum, "1.", false).
		Set(1, colText, "AT - IN - ON", false).
		Set(2, colText, "in", false)

	res := ScanSheet(g, models.LevelB1)

	assert.Empty(t, res.Records)
	assert.Equal(t, models.Category(""), res.Category)
	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.KindUnknownSheet, res.Diagnostics[0].Kind)
	assert.Nil(t, res.Diagnostics[0].Location)
}

func TestScanner_DetectorOrder(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "AT - IN - ON", false).
		Set(2, colText, "in", false)

	custom := Detector{
		Name:    "custom",
		Applies: func(b *Block) bool { return true },
		Extract: func(b *Block) Detection {
			return Detection{Candidate: &Candidate{Prompt: "custom " + b.Prompt()}, Consumed: 2}
		},
	}

	records, diags := NewScanner(g, models.CategoryGrammar, models.LevelA1,
		WithDetectors(append([]Detector{custom}, DefaultDetectors()...)...)).Run()
	require.Len(t, records, 1)
	assert.Equal(t, "custom AT - IN - ON", records[0].Prompt)
	assert.Empty(t, diags)

	records, _ = NewScanner(g, models.CategoryGrammar, models.LevelA1,
		WithDetectors(append(DefaultDetectors(), custom)...)).Run()
	require.Len(t, records, 1)
	assert.Len(t, records[0].Options, 3)
}

func TestScanner_ZeroConsumptionStillAdvances(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, colNum, "1.", false).
		Set(1, colText, "first", false).
		Set(2, colNum, "2.", false).
		Set(2, colText, "second", false)

	calls := 0
	stuck := Detector{
		Name:    "stuck",
		Applies: func(b *Block) bool { return true },
		Extract: func(b *Block) Detection {
			calls++
			return Detection{Candidate: &Candidate{Prompt: b.Prompt()}}
		},
	}

	records, _ := NewScanner(g, models.CategoryGrammar, models.LevelA1, WithDetectors(stuck)).Run()
	assert.Equal(t, 2, calls)
	assert.Len(t, records, 2)
}

func TestScanner_CustomLayout(t *testing.T) {
	g := NewGrid("Grammar").
		Set(1, 1, "1.", false).
		Set(1, 2, "We ___ tired.", false).
		Set(2, 1, "A", false).Set(2, 2, "are", true).
		Set(3, 1, "B", false).Set(3, 2, "is", false)

	layout := Layout{NumberCol: 1, TextCol: 2, AnswerCol: 3}
	res := ScanSheet(g, models.LevelA1, WithLayout(layout))

	require.Len(t, res.Records, 1)
	assert.Equal(t, []string{"A"}, correctLabels(res.Records[0]))
}

func TestScanSheet_NoAnswerFallback(t *testing.T) {
	g := NewGrid("Vocabulary").
		Set(4, colNum, "3.", false).
		Set(4, colText, "A large body of water.", false).
		Set(5, colNum, "A", false).Set(5, colText, "sea", false).
		Set(6, colNum, "B", false).Set(6, colText, "hill", false).
		Set(7, colNum, "C", false).Set(7, colText, "road", false).
		Set(8, colNum, "D", false).Set(8, colText, "town", false)

	res := ScanSheet(g, models.LevelA1)

	require.Len(t, res.Records, 1)
	q := res.Records[0]
	assert.Len(t, q.Options, 4)
	assert.Zero(t, q.CorrectCount())

	require.Len(t, res.Diagnostics, 1)
	d := res.Diagnostics[0]
	assert.Equal(t, models.KindAmbiguousAnswer, d.Kind)
	assert.Equal(t, q.Source.Sheet, d.Sheet)
	assert.Equal(t, q.Source.Row, d.Location.Row)
}
