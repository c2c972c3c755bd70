package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exquiz-go/pkg/exquiz"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/config"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exquiz",
		Short: "Extract exam questions from Excel workbooks",
		Long: `exquiz-go scans exam workbooks (Grammar, Vocabulary and Reading sheets),
extracts multiple-choice questions with their correct answers, and reports
anomalies as diagnostics instead of failing on malformed blocks.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().String("config", "", "Config file (default: ./.exquiz.yaml or XDG config dir)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	cmd.AddCommand(NewParseCmd())
	cmd.AddCommand(NewBatchCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewImportCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// settings bundles what every subcommand needs.
type settings struct {
	cfg    *config.Config
	logger *slog.Logger
	opts   exquiz.Options
}

// loadSettings reads the config file, applies common flags and builds the logger.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	logger := newLogger(cmd.ErrOrStderr(), level)

	layout, err := cfg.ParserLayout()
	if err != nil {
		return nil, err
	}
	opts := exquiz.DefaultOptions()
	opts.Layout = layout
	opts.Concurrency = cfg.Concurrency

	if cmd.Flags().Lookup("level") != nil {
		if lv, _ := cmd.Flags().GetString("level"); lv != "" {
			parsed, err := models.ParseLevel(lv)
			if err != nil {
				return nil, err
			}
			opts.Level = parsed
		}
	}
	if cmd.Flags().Lookup("concurrency") != nil && cmd.Flags().Changed("concurrency") {
		n, _ := cmd.Flags().GetInt("concurrency")
		opts.Concurrency = n
	}
	if cmd.Flags().Lookup("pattern") != nil && cmd.Flags().Changed("pattern") {
		cfg.Pattern, _ = cmd.Flags().GetString("pattern")
	}

	return &settings{cfg: cfg, logger: logger, opts: opts}, nil
}

// newLogger builds a text slog logger writing to w at the given level.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lv slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lv = slog.LevelDebug
	case "warn":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv}))
}

// logDiagnostics writes diagnostics to the logger: warnings at debug level
// (they are summarized separately), errors at error level.
func logDiagnostics(logger *slog.Logger, diags []models.Diagnostic) {
	for _, d := range diags {
		attrs := []any{"kind", d.Kind}
		if d.Book != "" {
			attrs = append(attrs, "book", d.Book)
		}
		if d.Sheet != "" {
			attrs = append(attrs, "sheet", d.Sheet)
		}
		if d.Location != nil {
			attrs = append(attrs, "cell", d.Location.String())
		}
		if d.Severity == models.SeverityError {
			logger.Error(d.Message, attrs...)
		} else {
			logger.Debug(d.Message, attrs...)
		}
	}
}
