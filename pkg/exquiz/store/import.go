package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/analytics"
	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// ErrLocked is returned when another process is importing into the same sqlite file.
var ErrLocked = errors.New("database is locked by another import")

// ImportOptions controls an import run.
type ImportOptions struct {
	// ClearLevels deletes existing questions of these levels before importing.
	ClearLevels []models.Level
	// SkipInvalid drops records with no options or no correct option.
	SkipInvalid bool
}

// ImportStats reports the outcome of an import run.
type ImportStats struct {
	RunID      string `json:"run_id"`
	Created    int    `json:"created"`
	Duplicates int    `json:"duplicates"`
	Invalid    int    `json:"invalid"`
	Cleared    int    `json:"cleared"`
}

// Import writes records in a single transaction. A record whose
// (level, category, prompt) already exists is counted as a duplicate and left
// untouched. Either every record is applied or none is.
func (s *Store) Import(ctx context.Context, records []models.QuestionRecord, opts ImportOptions) (ImportStats, error) {
	stats := ImportStats{RunID: uuid.NewString()}

	unlock, err := s.lock(ctx)
	if err != nil {
		return stats, err
	}
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	now := time.Now().Unix()
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO imports (id, started_at) VALUES ($1, $2)`, stats.RunID, now); err != nil {
		return stats, fmt.Errorf("record import run: %w", err)
	}

	for _, level := range opts.ClearLevels {
		n, err := deleteLevel(ctx, tx, level)
		if err != nil {
			return stats, err
		}
		stats.Cleared += n
	}

	for _, q := range records {
		if opts.SkipInvalid && !analytics.IsValid(q) {
			stats.Invalid++
			continue
		}
		created, err := insertQuestion(ctx, tx, q, stats.RunID, now)
		if err != nil {
			return stats, fmt.Errorf("import %s row %d: %w", q.Source.Sheet, q.Source.Row, err)
		}
		if created {
			stats.Created++
		} else {
			stats.Duplicates++
		}
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE imports SET created = $1, duplicates = $2, invalid = $3 WHERE id = $4`,
		stats.Created, stats.Duplicates, stats.Invalid, stats.RunID); err != nil {
		return stats, fmt.Errorf("update import run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}
	return stats, nil
}

// insertQuestion creates the question and its options unless a question with
// the same (level, category, prompt) exists. It reports whether it created one.
func insertQuestion(ctx context.Context, tx *sql.Tx, q models.QuestionRecord, runID string, now int64) (bool, error) {
	var existing int64
	err := tx.QueryRowContext(ctx,
		`SELECT id FROM questions WHERE level = $1 AND category = $2 AND prompt = $3`,
		string(q.Level), string(q.Category), q.Prompt).Scan(&existing)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, err
	}

	var paragraph sql.NullString
	if q.Paragraph != nil {
		paragraph = sql.NullString{String: *q.Paragraph, Valid: true}
	}

	var id int64
	if err := tx.QueryRowContext(ctx,
		`INSERT INTO questions (level, category, prompt, paragraph, source_sheet, source_row, import_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		string(q.Level), string(q.Category), q.Prompt, paragraph,
		q.Source.Sheet, q.Source.Row, runID, now).Scan(&id); err != nil {
		return false, err
	}

	for _, o := range q.Options {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO options (question_id, label, text, is_correct) VALUES ($1, $2, $3, $4)`,
			id, o.Label, o.Text, o.IsCorrect); err != nil {
			return false, fmt.Errorf("option %s: %w", o.Label, err)
		}
	}
	return true, nil
}

func deleteLevel(ctx context.Context, tx *sql.Tx, level models.Level) (int, error) {
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM options WHERE question_id IN (SELECT id FROM questions WHERE level = $1)`,
		string(level)); err != nil {
		return 0, fmt.Errorf("clear %s options: %w", level, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM questions WHERE level = $1`, string(level))
	if err != nil {
		return 0, fmt.Errorf("clear %s questions: %w", level, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// lock takes the import lock for file-backed sqlite stores.
func (s *Store) lock(ctx context.Context) (func(), error) {
	if s.lockPath == "" {
		return func() {}, nil
	}
	fl := flock.New(s.lockPath)
	lockCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	locked, err := fl.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("acquire lock on %s: %w", s.lockPath, err)
	}
	if !locked {
		return nil, ErrLocked
	}
	return func() { _ = fl.Unlock() }, nil
}
