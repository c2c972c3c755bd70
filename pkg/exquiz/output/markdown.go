package output

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/analytics"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// FileSummary is one line of the per-workbook table.
type FileSummary struct {
	Path      string
	Level     models.Level
	Questions int
	Warnings  int
	Err       error
}

// Summary is the input of the Markdown report.
type Summary struct {
	Title       string
	Files       []FileSummary
	Report      models.AnalyticsReport
	Diagnostics []models.Diagnostic
}

// WriteMarkdown renders the summary as a Markdown document.
func WriteMarkdown(w io.Writer, s Summary) error {
	md := markdown.NewMarkdown(w)

	title := s.Title
	if title == "" {
		title = "Question Import Report"
	}
	md.H1(title)
	md.PlainText("")

	writeFiles(md, s.Files)
	writeAnalytics(md, s.Report)
	writeDuplicates(md, s.Report)
	writeDiagnostics(md, s.Diagnostics)

	return md.Build()
}

func writeFiles(md *markdown.Markdown, files []FileSummary) {
	if len(files) == 0 {
		return
	}
	md.H2("Workbooks")
	md.PlainText("")

	rows := make([][]string, len(files))
	for i, f := range files {
		status := "ok"
		if f.Err != nil {
			status = "failed: " + f.Err.Error()
		}
		rows[i] = []string{
			filepath.Base(f.Path),
			string(f.Level),
			strconv.Itoa(f.Questions),
			strconv.Itoa(f.Warnings),
			status,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Workbook", "Level", "Questions", "Warnings", "Status"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeAnalytics(md *markdown.Markdown, r models.AnalyticsReport) {
	md.H2("Analytics")
	md.PlainText("")

	sizes := analytics.SuggestColumnSizes(r)
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total questions", strconv.Itoa(r.Total)},
			{"Duplicate prompts", strconv.Itoa(len(r.DuplicatePrompts))},
			{"Longest prompt", strconv.Itoa(r.MaxPromptLength)},
			{"Longest option", strconv.Itoa(r.MaxOptionTextLength)},
			{"Missing correct answer", strconv.Itoa(r.MissingCorrectCount)},
			{"Suggested prompt column size", strconv.Itoa(sizes.Prompt)},
			{"Suggested option column size", strconv.Itoa(sizes.Option)},
		},
	})
	md.PlainText("")

	if r.MissingCorrectCount > 0 {
		md.Warningf("%d question(s) have no option marked correct.", r.MissingCorrectCount)
		md.PlainText("")
	}

	if len(r.OptionCountDistribution) == 0 {
		return
	}
	counts := sortedKeys(r.OptionCountDistribution)

	md.H2("Options per Question")
	md.PlainText("")
	rows := make([][]string, len(counts))
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Options per question"),
		piechart.WithShowData(true),
	)
	for i, c := range counts {
		freq := r.OptionCountDistribution[c]
		rows[i] = []string{strconv.Itoa(c), strconv.Itoa(freq)}
		chart.LabelAndIntValue(fmt.Sprintf("%d options", c), uint64(freq))
	}
	md.Table(markdown.TableSet{
		Header: []string{"Options", "Questions"},
		Rows:   rows,
	})
	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

func writeDuplicates(md *markdown.Markdown, r models.AnalyticsReport) {
	if len(r.DuplicatePrompts) == 0 {
		return
	}
	prompts := make([]string, 0, len(r.DuplicatePrompts))
	for p := range r.DuplicatePrompts {
		prompts = append(prompts, p)
	}
	sort.Strings(prompts)

	md.H2("Duplicate Prompts")
	md.PlainText("")
	rows := make([][]string, len(prompts))
	for i, p := range prompts {
		rows[i] = []string{truncate(p, 60), strconv.Itoa(r.DuplicatePrompts[p])}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Prompt", "Count"},
		Rows:   rows,
	})
	md.PlainText("")
}

func writeDiagnostics(md *markdown.Markdown, diags []models.Diagnostic) {
	md.H2("Diagnostics")
	md.PlainText("")
	if len(diags) == 0 {
		md.Note("No parsing anomalies were found.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(diags))
	for i, d := range diags {
		loc := "-"
		if d.Location != nil {
			loc = d.Location.String()
		}
		rows[i] = []string{
			string(d.Severity),
			string(d.Kind),
			orDash(d.Book),
			orDash(d.Sheet),
			loc,
			d.Message,
		}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Severity", "Kind", "Workbook", "Sheet", "Cell", "Message"},
		Rows:   rows,
	})
	md.PlainText("")
}

func sortedKeys(m map[int]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// truncate shortens s to maxLen runes, adding an ellipsis.
func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
