package exquiz

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/parser"
	"github.com/xuri/excelize/v2"
)

type cell struct {
	ref  string
	text string
	bold bool
}

type sheetFixture struct {
	name  string
	cells []cell
}

var grammarSheet = sheetFixture{
	name: "Grammar",
	cells: []cell{
		{ref: "B1", text: "1."},
		{ref: "C1", text: "AT – FOR – IN – ON"},
		{ref: "C2", text: "in"},
		{ref: "B4", text: "2."},
		{ref: "C4", text: "She ___ a nurse."},
		{ref: "B5", text: "A"}, {ref: "C5", text: "is", bold: true},
		{ref: "B6", text: "B"}, {ref: "C6", text: "are"},
		{ref: "B7", text: "C"}, {ref: "C7", text: "am"},
		{ref: "B8", text: "D"}, {ref: "C8", text: "be"},
	},
}

var vocabularySheet = sheetFixture{
	name: "Vocabulary",
	cells: []cell{
		{ref: "B1", text: "1."},
		{ref: "C1", text: "A place where you buy bread."},
		{ref: "B2", text: "A"}, {ref: "C2", text: "bakery", bold: true},
		{ref: "B3", text: "B"}, {ref: "C3", text: "library"},
		{ref: "B4", text: "C"}, {ref: "C4", text: "bank"},
	},
}

var instructionsSheet = sheetFixture{
	name:  "Instructions",
	cells: []cell{{ref: "A1", text: "Answer every question."}},
}

// writeWorkbook saves an xlsx file with the given sheets in order.
func writeWorkbook(t *testing.T, path string, sheets ...sheetFixture) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	require.NoError(t, err)

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for _, c := range s.cells {
			require.NoError(t, f.SetCellValue(s.name, c.ref, c.text))
			if c.bold {
				require.NoError(t, f.SetCellStyle(s.name, c.ref, c.ref, bold))
			}
		}
	}
	require.NoError(t, f.SaveAs(path))
}

func TestLevelFromFilename(t *testing.T) {
	tests := []struct {
		path    string
		want    models.Level
		wantErr bool
	}{
		{"KELET-B1.xlsx", models.LevelB1, false},
		{"/data/exams/KELET-a2.xlsx", models.LevelA2, false},
		{"EXAM-PART-C1.xlsx", models.LevelC1, false},
		{"KELET.xlsx", "", true},
		{"KELET-D1.xlsx", "", true},
		{"KELET-B1-old.xlsx", "", true},
	}

	for _, tt := range tests {
		got, err := LevelFromFilename(tt.path)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownLevel, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}

func TestExtract(t *testing.T) {
	path := filepath.Join(t.TempDir(), "KELET-B1.xlsx")
	writeWorkbook(t, path, grammarSheet, vocabularySheet, instructionsSheet)

	res, err := Extract(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "KELET-B1.xlsx", res.BookName)
	assert.Equal(t, models.LevelB1, res.Level)
	require.Len(t, res.Questions, 3)

	prep := res.Questions[0]
	assert.Equal(t, models.CategoryGrammar, prep.Category)
	assert.Len(t, prep.Options, 4)
	assert.True(t, prep.Options[2].IsCorrect)

	fixed := res.Questions[1]
	assert.Equal(t, "She ___ a nurse.", fixed.Prompt)
	assert.True(t, fixed.Options[0].IsCorrect)
	assert.Equal(t, 1, fixed.CorrectCount())

	vocab := res.Questions[2]
	assert.Equal(t, models.CategoryVocabulary, vocab.Category)
	assert.Len(t, vocab.Options, 3)
	assert.Equal(t, "bakery", vocab.Options[0].Text)
	assert.True(t, vocab.Options[0].IsCorrect)

	for _, q := range res.Questions {
		assert.Equal(t, models.LevelB1, q.Level)
	}

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, models.KindUnknownSheet, res.Diagnostics[0].Kind)
	assert.Equal(t, "Instructions", res.Diagnostics[0].Sheet)
	assert.Equal(t, 1, res.WarningCount())
}

func TestExtract_LevelOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quiz.xlsx")
	writeWorkbook(t, path, vocabularySheet)

	_, err := Extract(path, DefaultOptions())
	assert.ErrorIs(t, err, ErrUnknownLevel)

	opts := DefaultOptions()
	opts.Level = models.LevelC1
	res, err := Extract(path, opts)
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, models.LevelC1, res.Questions[0].Level)
}

func TestExtract_Errors(t *testing.T) {
	dir := t.TempDir()
	corrupt := filepath.Join(dir, "KELET-A1.xlsx")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a workbook"), 0o644))

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing file", filepath.Join(dir, "KELET-A2.xlsx"), ErrFileNotFound},
		{"corrupt file", corrupt, ErrInvalidFormat},
		{"bad level", filepath.Join(dir, "KELET-Z9.xlsx"), ErrUnknownLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Extract(tt.path, DefaultOptions())
			assert.Nil(t, res)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, IsFileError(err))

			var openErr *WorkbookOpenError
			require.True(t, errors.As(err, &openErr))
			assert.Equal(t, tt.path, openErr.Path)
		})
	}
}

func TestExtractBook_SheetOrderWithConcurrency(t *testing.T) {
	var sheets []parser.Sheet
	names := []string{"Grammar 1", "Vocabulary 1", "Grammar 2", "Reading notes", "Vocabulary 2"}
	for _, name := range names {
		g := parser.NewGrid(name).
			Set(1, 2, "1.", false).
			Set(1, 3, name+" question", false).
			Set(2, 2, "A", false).Set(2, 3, "yes", true).
			Set(3, 2, "B", false).Set(3, 3, "no", false)
		sheets = append(sheets, g)
	}
	book := parser.NewBook("KELET-A2.xlsx", sheets...)

	opts := DefaultOptions()
	opts.Concurrency = 4
	res := ExtractBook(book, models.LevelA2, opts)

	assert.Equal(t, "KELET-A2.xlsx", res.BookName)
	require.Len(t, res.Questions, len(names))
	for i, q := range res.Questions {
		assert.Equal(t, names[i], q.Source.Sheet)
		assert.Equal(t, names[i]+" question", q.Prompt)
	}
	assert.Empty(t, res.Diagnostics)
}

func TestExtractBook_Empty(t *testing.T) {
	res := ExtractBook(parser.NewBook("empty.xlsx"), models.LevelA1, DefaultOptions())
	assert.NotNil(t, res.Questions)
	assert.Empty(t, res.Questions)
}
