package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/store"
)

// NewImportCmd creates the import command.
func NewImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [input.xlsx | dir]",
		Short: "Extract questions and store them in a database",
		Long: `Import extracts questions and writes them to the configured store in a
single transaction. Questions whose (level, type, prompt) already exist are
counted as duplicates and left untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}
	addBatchFlags(cmd)
	cmd.Flags().String("driver", "", "Store driver: sqlite or postgres (default from config)")
	cmd.Flags().String("dsn", "", "Store data source name (default from config)")
	cmd.Flags().Bool("clear", false, "Delete existing questions of the imported levels first")
	cmd.Flags().Bool("skip-invalid", false, "Skip questions without options or a correct option")
	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	records, err := collectQuestions(cmd, s, args[0])
	if err != nil {
		return err
	}

	driver := s.cfg.Store.Driver
	if d, _ := cmd.Flags().GetString("driver"); d != "" {
		driver = d
	}
	dsn := s.cfg.Store.DSN
	if d, _ := cmd.Flags().GetString("dsn"); d != "" {
		dsn = d
	}

	st, err := store.Open(cmd.Context(), store.Driver(driver), dsn)
	if err != nil {
		return err
	}
	defer st.Close()

	var opts store.ImportOptions
	if wipe, _ := cmd.Flags().GetBool("clear"); wipe {
		opts.ClearLevels = levelsOf(records)
	}
	opts.SkipInvalid, _ = cmd.Flags().GetBool("skip-invalid")

	stats, err := st.Import(cmd.Context(), records, opts)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	s.logger.Info("import complete",
		"run", stats.RunID,
		"driver", driver,
		"created", stats.Created,
		"duplicates", stats.Duplicates,
		"invalid", stats.Invalid,
		"cleared", stats.Cleared,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Created %d, duplicates %d, invalid %d, cleared %d\n",
		stats.Created, stats.Duplicates, stats.Invalid, stats.Cleared)
	return nil
}

// levelsOf returns the distinct levels of records in canonical order.
func levelsOf(records []models.QuestionRecord) []models.Level {
	var levels []models.Level
	for _, lv := range models.Levels {
		if slices.ContainsFunc(records, func(q models.QuestionRecord) bool { return q.Level == lv }) {
			levels = append(levels, lv)
		}
	}
	return levels
}
