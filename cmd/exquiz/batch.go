package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exquiz-go/pkg/exquiz"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/output"
)

// NewBatchCmd creates the batch command for a directory of workbooks.
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [dir]",
		Short: "Extract and analyse every workbook in a directory",
		Long: `Batch extracts every workbook matching --pattern, aggregates analytics
across files and prints a summary. A workbook that cannot be read is logged
and skipped. The command fails only when no question was parsed at all.`,
		Args: cobra.ExactArgs(1),
		RunE: runBatch,
	}
	addBatchFlags(cmd)
	cmd.Flags().String("json", "", "Write all questions as JSON to this file")
	cmd.Flags().String("report", "", "Write a Markdown report to this file")
	cmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	return cmd
}

// addBatchFlags registers the flags shared by directory-based commands.
func addBatchFlags(cmd *cobra.Command) {
	cmd.Flags().String("pattern", exquiz.DefaultPattern, "Glob for workbook file names")
	cmd.Flags().Int("concurrency", 4, "Number of workbooks processed in parallel")
	cmd.Flags().String("level", "", "Override the level of every workbook")
}

func runBatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	res, err := exquiz.ExtractDir(cmd.Context(), args[0], s.cfg.Pattern, s.opts, s.logger)
	if res == nil {
		return err
	}
	logDiagnostics(s.logger, res.Diagnostics)

	kinds := countKinds(res.Diagnostics)
	keys := make([]models.DiagnosticKind, 0, len(kinds))
	for k := range kinds {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, k := range keys {
		s.logger.Info("diagnostics", "kind", string(k), "count", kinds[k])
	}

	if path, _ := cmd.Flags().GetString("report"); path != "" {
		if werr := writeReport(path, res); werr != nil {
			return werr
		}
	}
	if path, _ := cmd.Flags().GetString("json"); path != "" {
		pretty, _ := cmd.Flags().GetBool("pretty")
		data, jerr := output.QuestionsToJSON(res.Questions, pretty)
		if jerr != nil {
			return fmt.Errorf("serialization failed: %w", jerr)
		}
		if werr := os.WriteFile(path, data, 0o644); werr != nil {
			return fmt.Errorf("failed to write output: %w", werr)
		}
	}

	printSummary(cmd.OutOrStdout(), res)
	return err
}
