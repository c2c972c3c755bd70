package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ukaji3/exquiz-go/pkg/exquiz/models"
)

// Count returns the number of stored questions, optionally for one level.
func (s *Store) Count(ctx context.Context, level models.Level) (int, error) {
	var n int
	var err error
	if level == "" {
		err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	} else {
		err = s.db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM questions WHERE level = $1`, string(level)).Scan(&n)
	}
	if err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

// Questions returns the stored questions of a level (all levels when empty)
// with their options, ordered by insertion.
func (s *Store) Questions(ctx context.Context, level models.Level) ([]models.QuestionRecord, error) {
	query := `SELECT id, level, category, prompt, paragraph, source_sheet, source_row FROM questions`
	var args []any
	if level != "" {
		query += ` WHERE level = $1`
		args = append(args, string(level))
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var (
		ids     []int64
		records []models.QuestionRecord
	)
	for rows.Next() {
		var (
			id        int64
			q         models.QuestionRecord
			lvl, cat  string
			paragraph sql.NullString
		)
		if err := rows.Scan(&id, &lvl, &cat, &q.Prompt, &paragraph, &q.Source.Sheet, &q.Source.Row); err != nil {
			return nil, err
		}
		q.Level = models.Level(lvl)
		q.Category = models.Category(cat)
		if paragraph.Valid {
			p := paragraph.String
			q.Paragraph = &p
		}
		ids = append(ids, id)
		records = append(records, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	// Options are loaded after the question cursor is closed; sqlite stores
	// run on a single connection.
	for i, id := range ids {
		opts, err := s.options(ctx, id)
		if err != nil {
			return nil, err
		}
		records[i].Options = opts
	}
	return records, nil
}

func (s *Store) options(ctx context.Context, questionID int64) ([]models.OptionRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT label, text, is_correct FROM options WHERE question_id = $1 ORDER BY id`, questionID)
	if err != nil {
		return nil, fmt.Errorf("query options: %w", err)
	}
	defer rows.Close()

	opts := []models.OptionRecord{}
	for rows.Next() {
		var o models.OptionRecord
		if err := rows.Scan(&o.Label, &o.Text, &o.IsCorrect); err != nil {
			return nil, err
		}
		opts = append(opts, o)
	}
	return opts, rows.Err()
}

// DeleteLevel removes all questions of a level and returns how many were deleted.
func (s *Store) DeleteLevel(ctx context.Context, level models.Level) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	n, err := deleteLevel(ctx, tx, level)
	if err != nil {
		return 0, err
	}
	return n, tx.Commit()
}
