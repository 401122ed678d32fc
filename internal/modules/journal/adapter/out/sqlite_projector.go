package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"selfforge/internal/modules/journal/domain"
	journalout "selfforge/internal/modules/journal/port/out"

	_ "modernc.org/sqlite"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// SQLiteEntryProjector is the journal read model: per-day reward sums,
// lifetime totals and recency-ordered listings, rebuildable from the source
// document at any time.
type SQLiteEntryProjector struct {
	db *sql.DB
}

func NewSQLiteEntryProjector(dbPath string) (journalout.EntryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteEntryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteEntryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS entries (
  id TEXT PRIMARY KEY,
  completed_at TEXT NOT NULL,
  day TEXT NOT NULL,
  task_name TEXT NOT NULL,
  duration_seconds INTEGER NOT NULL,
  coins_earned INTEGER NOT NULL,
  feeling TEXT,
  advisory TEXT
);
CREATE INDEX IF NOT EXISTS idx_entries_day ON entries(day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create entries table: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) Upsert(ctx context.Context, entry domain.Entry) error {
	const stmt = `
INSERT INTO entries (id, completed_at, day, task_name, duration_seconds, coins_earned, feeling, advisory)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  completed_at=excluded.completed_at,
  day=excluded.day,
  task_name=excluded.task_name,
  duration_seconds=excluded.duration_seconds,
  coins_earned=excluded.coins_earned,
  feeling=excluded.feeling,
  advisory=excluded.advisory;
`
	_, err := s.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.CompletedAt.Format(timeLayout),
		domain.DayKey(entry.CompletedAt),
		entry.TaskName,
		entry.DurationSeconds,
		entry.CoinsEarned,
		entry.Feeling,
		entry.Advisory,
	)
	if err != nil {
		return fmt.Errorf("upsert entry: %w", err)
	}
	return nil
}

func (s *SQLiteEntryProjector) DailySums(ctx context.Context, from, to time.Time) (map[string]int, error) {
	const query = `
SELECT day, SUM(coins_earned)
FROM entries
WHERE day BETWEEN ? AND ?
GROUP BY day;
`
	rows, err := s.db.QueryContext(ctx, query, domain.DayKey(from), domain.DayKey(to))
	if err != nil {
		return nil, fmt.Errorf("query daily sums: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sums := map[string]int{}
	for rows.Next() {
		var day string
		var coins int
		if err := rows.Scan(&day, &coins); err != nil {
			return nil, fmt.Errorf("scan daily sum: %w", err)
		}
		sums[day] = coins
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily sums: %w", err)
	}
	return sums, nil
}

func (s *SQLiteEntryProjector) TotalCoins(ctx context.Context) (int, error) {
	var total int
	row := s.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(coins_earned), 0) FROM entries`)
	if err := row.Scan(&total); err != nil {
		return 0, fmt.Errorf("query total coins: %w", err)
	}
	return total, nil
}

func (s *SQLiteEntryProjector) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	query := `
SELECT id, completed_at, task_name, duration_seconds, coins_earned, feeling, advisory
FROM entries
ORDER BY completed_at DESC, id DESC
`
	args := []any{}
	if limit > 0 {
		query += "LIMIT ?\n"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []domain.Entry{}
	for rows.Next() {
		var entry domain.Entry
		var completedAt string
		var feeling, advisory sql.NullString
		if err := rows.Scan(&entry.ID, &completedAt, &entry.TaskName, &entry.DurationSeconds, &entry.CoinsEarned, &feeling, &advisory); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entry.CompletedAt, err = time.Parse(timeLayout, completedAt)
		if err != nil {
			return nil, fmt.Errorf("parse entry time: %w", err)
		}
		entry.Feeling = feeling.String
		entry.Advisory = advisory.String
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func (s *SQLiteEntryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries`); err != nil {
		return fmt.Errorf("reset entries: %w", err)
	}
	return nil
}
