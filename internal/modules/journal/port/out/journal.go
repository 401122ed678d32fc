package out

import (
	"context"
	"time"

	"selfforge/internal/modules/journal/domain"
)

// EntryStore is the journal's source of truth: one ordered JSON document.
// Load on a fresh install returns an empty history.
type EntryStore interface {
	Load(ctx context.Context) ([]domain.Entry, error)
	Append(ctx context.Context, entry domain.Entry) error
}

// EntryProjector maintains the sqlite read model the aggregates are served
// from. It can always be rebuilt from the EntryStore.
type EntryProjector interface {
	Upsert(ctx context.Context, entry domain.Entry) error
	DailySums(ctx context.Context, from, to time.Time) (map[string]int, error)
	TotalCoins(ctx context.Context) (int, error)
	List(ctx context.Context, limit int) ([]domain.Entry, error)
	Reset(ctx context.Context) error
}

// NoteWriter exports a human-readable note per entry. Notes are derived
// artifacts, never read back.
type NoteWriter interface {
	Write(ctx context.Context, entry domain.Entry) (string, error)
}
