package exquiz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/analytics"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
	"golang.org/x/sync/errgroup"
)

// FileResult is the outcome of one workbook in a batch.
type FileResult struct {
	// Path is the workbook path.
	Path string
	// Result is nil when Err is set.
	Result *models.WorkbookResult
	// Err is the whole-file failure, if any.
	Err error
}

// BatchResult aggregates a batch run in file name order.
type BatchResult struct {
	Files       []FileResult
	Questions   []models.QuestionRecord
	Diagnostics []models.Diagnostic
	Report      models.AnalyticsReport
}

// Failed returns the number of files that could not be processed.
func (b *BatchResult) Failed() int {
	n := 0
	for _, f := range b.Files {
		if f.Err != nil {
			n++
		}
	}
	return n
}

// ExtractDir extracts every workbook in dir whose name matches pattern.
func ExtractDir(ctx context.Context, dir, pattern string, opts Options, logger *slog.Logger) (*BatchResult, error) {
	if pattern == "" {
		pattern = DefaultPattern
	}
	paths, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoWorkbooks, filepath.Join(dir, pattern))
	}
	return ExtractFiles(ctx, paths, opts, logger)
}

// ExtractFiles extracts the given workbooks. A file that cannot be opened is
// logged, recorded as an error diagnostic and skipped; the batch continues.
// Files are processed concurrently up to opts.Concurrency and merged in
// sorted path order. ErrNoQuestions is returned (with the result) when no
// file yielded a question.
func ExtractFiles(ctx context.Context, paths []string, opts Options, logger *slog.Logger) (*BatchResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	paths = append([]string(nil), paths...)
	sort.Strings(paths)

	logger.Info("starting batch extraction",
		"files", len(paths),
		"concurrency", opts.workers(),
	)
	start := time.Now()

	// Files are parallelized; sheets inside a file are scanned sequentially.
	fileOpts := opts
	fileOpts.Concurrency = 1

	files := make([]FileResult, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			res, err := Extract(path, fileOpts)
			files[i] = FileResult{Path: path, Result: res, Err: err}
			if err != nil {
				logger.Error("failed to parse workbook",
					"file", filepath.Base(path),
					"error", err,
				)
				return nil
			}
			logger.Info("parsed workbook",
				"file", res.BookName,
				"level", res.Level,
				"questions", len(res.Questions),
				"warnings", res.WarningCount(),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	batch := &BatchResult{Files: files}
	acc := analytics.NewAccumulator()
	for _, f := range files {
		if f.Err != nil {
			batch.Diagnostics = append(batch.Diagnostics, models.Diagnostic{
				Severity: models.SeverityError,
				Kind:     models.KindWorkbookOpen,
				Message:  f.Err.Error(),
				Book:     filepath.Base(f.Path),
			})
			continue
		}
		batch.Questions = append(batch.Questions, f.Result.Questions...)
		for _, d := range f.Result.Diagnostics {
			d.Book = f.Result.BookName
			batch.Diagnostics = append(batch.Diagnostics, d)
		}
		acc.Add(f.Result.Questions...)
	}
	batch.Report = acc.Report()

	logger.Info("batch extraction complete",
		"files", len(paths),
		"failed", batch.Failed(),
		"questions", len(batch.Questions),
		"elapsed", time.Since(start),
	)

	if len(batch.Questions) == 0 {
		return batch, ErrNoQuestions
	}
	return batch, nil
}

// IsFileError reports whether err is a per-file workbook failure.
func IsFileError(err error) bool {
	var openErr *WorkbookOpenError
	return errors.As(err, &openErr)
}
