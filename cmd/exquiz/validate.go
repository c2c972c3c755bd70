package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/ukaji3/exquiz-go/pkg/exquiz"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/analytics"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// errInvalidQuestions is returned when validate finds at least one issue.
var errInvalidQuestions = errors.New("invalid questions found")

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [input.xlsx | dir]",
		Short: "List questions a downstream importer would reject",
		Long: `Validate extracts a workbook (or every matching workbook in a directory)
and lists the questions that have no options or no correct option.
It exits non-zero when any such question exists.`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
	addBatchFlags(cmd)
	return cmd
}

func runValidate(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	records, err := collectQuestions(cmd, s, args[0])
	if err != nil {
		return err
	}

	issues := analytics.Validate(records)
	out := cmd.OutOrStdout()
	warn := color.New(color.FgYellow)
	if useColor(out) {
		warn.EnableColor()
	} else {
		warn.DisableColor()
	}
	for _, is := range issues {
		warn.Fprintf(out, "%s!%s: %s: %s\n",
			is.Record.Source.Sheet,
			models.At(is.Record.Source.Row, s.opts.Layout.NumberCol),
			is.Problem,
			is.Record.Prompt,
		)
	}
	fmt.Fprintf(out, "%d of %d questions valid\n", len(records)-len(issues), len(records))
	if len(issues) > 0 {
		return fmt.Errorf("%w: %d", errInvalidQuestions, len(issues))
	}
	return nil
}

// collectQuestions extracts one workbook or a whole directory depending on path.
func collectQuestions(cmd *cobra.Command, s *settings, path string) ([]models.QuestionRecord, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", exquiz.ErrFileNotFound, path)
	}
	if !info.IsDir() {
		res, err := exquiz.Extract(path, s.opts)
		if err != nil {
			return nil, fmt.Errorf("extraction failed: %w", err)
		}
		logDiagnostics(s.logger, res.Diagnostics)
		return res.Questions, nil
	}

	res, err := exquiz.ExtractDir(cmd.Context(), path, s.cfg.Pattern, s.opts, s.logger)
	if res == nil {
		return nil, err
	}
	logDiagnostics(s.logger, res.Diagnostics)
	if err != nil && !errors.Is(err, exquiz.ErrNoQuestions) {
		return nil, err
	}
	s.logger.Debug("collected questions", "dir", filepath.Clean(path), "questions", len(res.Questions))
	return res.Questions, nil
}
