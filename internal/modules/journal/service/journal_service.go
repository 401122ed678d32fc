package service

import (
	"context"

	"selfforge/internal/modules/journal/domain"
	journalout "selfforge/internal/modules/journal/port/out"
	"selfforge/internal/platform/clock"
	apperrors "selfforge/internal/platform/errors"
	"selfforge/internal/platform/id"
)

type JournalService struct {
	clock     clock.Clock
	idGen     id.Generator
	store     journalout.EntryStore
	projector journalout.EntryProjector
	notes     journalout.NoteWriter
}

func NewJournalService(clk clock.Clock, idGen id.Generator, store journalout.EntryStore, projector journalout.EntryProjector, notes journalout.NoteWriter) *JournalService {
	return &JournalService{clock: clk, idGen: idGen, store: store, projector: projector, notes: notes}
}

// Append stamps and records a completed session. The JSON document is the
// source of truth; the projection follows. The markdown note is best-effort,
// a failed export leaves the record intact and reports an empty path.
func (s *JournalService) Append(ctx context.Context, taskName string, durationSeconds, coinsEarned int, feeling, advisory string) (domain.Entry, string, error) {
	if taskName == "" || durationSeconds <= 0 || coinsEarned < 0 {
		return domain.Entry{}, "", apperrors.ErrInvalidInput
	}
	entry := domain.Entry{
		ID:              s.idGen.New(),
		CompletedAt:     s.clock.Now(),
		TaskName:        taskName,
		DurationSeconds: durationSeconds,
		CoinsEarned:     coinsEarned,
		Feeling:         feeling,
		Advisory:        advisory,
	}
	if err := s.store.Append(ctx, entry); err != nil {
		return domain.Entry{}, "", err
	}
	if err := s.projector.Upsert(ctx, entry); err != nil {
		return domain.Entry{}, "", err
	}
	notePath, err := s.notes.Write(ctx, entry)
	if err != nil {
		notePath = ""
	}
	return entry, notePath, nil
}

// DailyTotals buckets the last windowDays calendar days, today included,
// zero-filling days without sessions.
func (s *JournalService) DailyTotals(ctx context.Context, windowDays int) ([]domain.DayTotal, error) {
	if windowDays < 1 {
		return nil, apperrors.ErrInvalidInput
	}
	today := s.clock.Now()
	from := today.AddDate(0, 0, -(windowDays - 1))
	sums, err := s.projector.DailySums(ctx, from, today)
	if err != nil {
		return nil, err
	}
	return domain.FillDailyTotals(today, windowDays, sums), nil
}

func (s *JournalService) Confidence(ctx context.Context) (int, int, error) {
	total, err := s.projector.TotalCoins(ctx)
	if err != nil {
		return 0, 0, err
	}
	return domain.Confidence(total), total, nil
}

// History lists entries most recent first. limit <= 0 means no limit.
func (s *JournalService) History(ctx context.Context, limit int) ([]domain.Entry, error) {
	return s.projector.List(ctx, limit)
}

// Reindex rebuilds the sqlite projection from the source-of-truth document.
func (s *JournalService) Reindex(ctx context.Context) error {
	entries, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	if err := s.projector.Reset(ctx); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.projector.Upsert(ctx, entry); err != nil {
			return err
		}
	}
	return nil
}
