package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exquiz-go/pkg/exquiz"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/output"
)

// NewParseCmd creates the parse command for a single workbook.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [input.xlsx]",
		Short: "Extract questions from one workbook as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().StringP("output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().Bool("pretty", false, "Pretty-print JSON output")
	cmd.Flags().String("level", "", "Override the level derived from the file name (A1, A2, B1, B2, C1)")
	cmd.Flags().Bool("questions-only", false, "Emit only the question array (import format)")
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	res, err := exquiz.Extract(args[0], s.opts)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	logDiagnostics(s.logger, res.Diagnostics)
	s.logger.Info("parsed workbook",
		"file", res.BookName,
		"level", res.Level,
		"questions", len(res.Questions),
		"warnings", res.WarningCount(),
	)

	pretty, _ := cmd.Flags().GetBool("pretty")
	questionsOnly, _ := cmd.Flags().GetBool("questions-only")
	var data []byte
	if questionsOnly {
		data, err = output.QuestionsToJSON(res.Questions, pretty)
	} else {
		data, err = output.ToJSON(res, pretty)
	}
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
