// Package config loads exquiz settings from YAML.
package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/parser"
)

// AppName is used for XDG directories.
const AppName = "exquiz"

// LayoutConfig names the block columns by letter ("B") or number ("2").
type LayoutConfig struct {
	NumberColumn string `yaml:"number_column"`
	TextColumn   string `yaml:"text_column"`
	AnswerColumn string `yaml:"answer_column"`
}

// StoreConfig configures the question store.
type StoreConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `yaml:"driver"`
	// DSN is the data source name; for sqlite, a file path.
	DSN string `yaml:"dsn"`
}

// Config represents exquiz configuration options.
type Config struct {
	// Pattern is the glob used to find workbooks in a directory.
	Pattern string `yaml:"pattern"`

	// Concurrency is the number of workbooks processed in parallel.
	Concurrency int `yaml:"concurrency"`

	// LogLevel sets the logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`

	Layout LayoutConfig `yaml:"layout"`
	Store  StoreConfig  `yaml:"store"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Pattern:     "KELET-*.xlsx",
		Concurrency: 4,
		LogLevel:    "info",
		Layout: LayoutConfig{
			NumberColumn: "B",
			TextColumn:   "C",
			AnswerColumn: "D",
		},
		Store: StoreConfig{
			Driver: "sqlite",
			DSN:    filepath.Join(DataDir(), "questions.db"),
		},
	}
}

// DataDir returns the XDG data directory for exquiz.
func DataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// ConfigDir returns the XDG config directory for exquiz.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// ParserLayout converts the configured columns into a parser.Layout.
func (c *Config) ParserLayout() (parser.Layout, error) {
	var l parser.Layout
	var err error
	if l.NumberCol, err = parser.ParseColumn(c.Layout.NumberColumn); err != nil {
		return l, fmt.Errorf("number_column: %w", err)
	}
	if l.TextCol, err = parser.ParseColumn(c.Layout.TextColumn); err != nil {
		return l, fmt.Errorf("text_column: %w", err)
	}
	if l.AnswerCol, err = parser.ParseColumn(c.Layout.AnswerColumn); err != nil {
		return l, fmt.Errorf("answer_column: %w", err)
	}
	return l, l.Validate()
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Pattern) == "" {
		return errors.New("pattern must not be empty")
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("invalid pattern %q: %w", c.Pattern, err)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	switch c.Store.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	if _, err := c.ParserLayout(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}
