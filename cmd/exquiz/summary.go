package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/ukaji3/exquiz-go/pkg/exquiz"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/output"
)

// useColor reports whether w is a terminal that should get colored output.
func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// printSummary writes a short per-file and overall summary of a batch.
func printSummary(w io.Writer, res *exquiz.BatchResult) {
	colored := useColor(w)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed, color.Bold)
	for _, c := range []*color.Color{green, yellow, red} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	for _, f := range res.Files {
		name := filepath.Base(f.Path)
		if f.Err != nil {
			red.Fprintf(w, "✗ %s: %v\n", name, f.Err)
			continue
		}
		line := fmt.Sprintf("✓ %s [%s]: %d questions, %d warnings\n",
			name, f.Result.Level, len(f.Result.Questions), f.Result.WarningCount())
		if f.Result.WarningCount() > 0 {
			yellow.Fprint(w, line)
		} else {
			green.Fprint(w, line)
		}
	}

	r := res.Report
	fmt.Fprintf(w, "\nTotal: %d questions from %d workbook(s), %d failed\n",
		r.Total, len(res.Files)-res.Failed(), res.Failed())
	fmt.Fprintf(w, "Duplicate prompts: %d, missing correct answer: %d\n",
		len(r.DuplicatePrompts), r.MissingCorrectCount)
	fmt.Fprintf(w, "Longest prompt: %d, longest option: %d\n",
		r.MaxPromptLength, r.MaxOptionTextLength)
}

// summaryFiles converts batch file results for the Markdown report.
func summaryFiles(res *exquiz.BatchResult) []output.FileSummary {
	files := make([]output.FileSummary, len(res.Files))
	for i, f := range res.Files {
		fs := output.FileSummary{Path: f.Path, Err: f.Err}
		if f.Result != nil {
			fs.Level = f.Result.Level
			fs.Questions = len(f.Result.Questions)
			fs.Warnings = f.Result.WarningCount()
		}
		files[i] = fs
	}
	return files
}

// writeReport renders the Markdown report to path.
func writeReport(path string, res *exquiz.BatchResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return output.WriteMarkdown(f, output.Summary{
		Files:       summaryFiles(res),
		Report:      res.Report,
		Diagnostics: res.Diagnostics,
	})
}

// countKinds tallies diagnostics by kind.
func countKinds(diags []models.Diagnostic) map[models.DiagnosticKind]int {
	counts := make(map[models.DiagnosticKind]int)
	for _, d := range diags {
		counts[d.Kind]++
	}
	return counts
}
