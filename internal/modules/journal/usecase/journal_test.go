package usecase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	journalout "selfforge/internal/modules/journal/adapter/out"
	"selfforge/internal/modules/journal/dto"
	journalin "selfforge/internal/modules/journal/port/in"
	"selfforge/internal/modules/journal/service"
	"selfforge/internal/modules/journal/usecase"
	apperrors "selfforge/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return "entry-" + string(rune('0'+s.n))
}

func newJournal(t *testing.T, clk *fakeClock) (journalin.Usecase, string) {
	t.Helper()
	home := t.TempDir()
	projector, err := journalout.NewSQLiteEntryProjector(filepath.Join(home, "selfforge.db"))
	if err != nil {
		t.Fatalf("open projection: %v", err)
	}
	svc := service.NewJournalService(clk, &seqID{},
		journalout.NewFileEntryStore(filepath.Join(home, "journal.json")),
		projector,
		journalout.NewForgeNoteWriter(home),
	)
	return usecase.NewInteractor(svc), home
}

func appendEntry(t *testing.T, uc journalin.Usecase, task string, coins int) dto.EntryOutput {
	t.Helper()
	entry, err := uc.Append(context.Background(), dto.AppendInput{
		TaskName:        task,
		DurationSeconds: 600,
		CoinsEarned:     coins,
		Feeling:         "steady",
		Advisory:        "The metal holds.",
	})
	if err != nil {
		t.Fatalf("append %q: %v", task, err)
	}
	return entry
}

func TestAppendStampsPersistsAndExportsANote(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	uc, home := newJournal(t, clk)

	entry := appendEntry(t, uc, "draft report", 1)
	if entry.ID == "" || !entry.CompletedAt.Equal(clk.now) {
		t.Fatalf("entry not stamped: %+v", entry)
	}
	if entry.NotePath == "" {
		t.Fatalf("expected a markdown note path")
	}
	payload, err := os.ReadFile(entry.NotePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if !strings.Contains(string(payload), "draft report") {
		t.Fatalf("note missing task name:\n%s", payload)
	}

	// The source-of-truth document lives beside the projection.
	if _, err := os.Stat(filepath.Join(home, "journal.json")); err != nil {
		t.Fatalf("journal document missing: %v", err)
	}
}

func TestAppendRejectsIncompleteRecords(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	uc, _ := newJournal(t, clk)

	cases := []dto.AppendInput{
		{TaskName: "", DurationSeconds: 600, CoinsEarned: 1},
		{TaskName: "x", DurationSeconds: 0, CoinsEarned: 1},
		{TaskName: "x", DurationSeconds: 600, CoinsEarned: -1},
	}
	for i, input := range cases {
		if _, err := uc.Append(context.Background(), input); !errors.Is(err, apperrors.ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestHistoryListsMostRecentFirst(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)}
	uc, _ := newJournal(t, clk)

	appendEntry(t, uc, "first", 1)
	clk.now = clk.now.Add(26 * time.Hour)
	appendEntry(t, uc, "second", 1)
	clk.now = clk.now.Add(26 * time.Hour)
	appendEntry(t, uc, "third", 1)

	entries, err := uc.History(context.Background(), dto.HistoryInput{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, want := range []string{"third", "second", "first"} {
		if entries[i].TaskName != want {
			t.Fatalf("position %d: expected %q, got %q", i, want, entries[i].TaskName)
		}
	}

	limited, err := uc.History(context.Background(), dto.HistoryInput{Limit: 2})
	if err != nil {
		t.Fatalf("limited history: %v", err)
	}
	if len(limited) != 2 || limited[0].TaskName != "third" {
		t.Fatalf("unexpected limited history: %+v", limited)
	}
}

func TestDailyTotalsZeroFillsTheSevenDayWindow(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)}
	uc, _ := newJournal(t, clk)

	appendEntry(t, uc, "six days ago", 1)
	clk.now = time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)
	appendEntry(t, uc, "two days ago", 1)
	appendEntry(t, uc, "two days ago again", 1)
	clk.now = time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	appendEntry(t, uc, "today", 1)

	totals, err := uc.DailyTotals(context.Background(), 7)
	if err != nil {
		t.Fatalf("daily totals: %v", err)
	}
	if len(totals) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(totals))
	}
	if !totals[6].Day.Equal(clk.now) {
		t.Fatalf("window must end today, got %v", totals[6].Day)
	}
	wantCoins := []int{1, 0, 0, 0, 2, 0, 1}
	sum := 0
	for i, total := range totals {
		if total.Coins != wantCoins[i] {
			t.Fatalf("bucket %d (%s): expected %d, got %d", i, total.Day.Format("2006-01-02"), wantCoins[i], total.Coins)
		}
		if total.Label != total.Day.Format("Mon") {
			t.Fatalf("bucket %d: unexpected label %q", i, total.Label)
		}
		sum += total.Coins
	}
	if sum != 4 {
		t.Fatalf("window sum: expected 4, got %d", sum)
	}

	if _, err := uc.DailyTotals(context.Background(), 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty window, got %v", err)
	}
}

func TestConfidenceGrowsWithLifetimeCoins(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	uc, _ := newJournal(t, clk)

	score, err := uc.Confidence(context.Background())
	if err != nil {
		t.Fatalf("confidence: %v", err)
	}
	if score.Score != 0 || score.TotalCoins != 0 {
		t.Fatalf("empty journal should score zero: %+v", score)
	}

	appendEntry(t, uc, "one", 3)
	appendEntry(t, uc, "two", 4)
	score, err = uc.Confidence(context.Background())
	if err != nil {
		t.Fatalf("confidence: %v", err)
	}
	if score.TotalCoins != 7 || score.Score != 14 {
		t.Fatalf("expected 7 coins scoring 14, got %+v", score)
	}
}

func TestReindexRebuildsTheProjectionFromTheDocument(t *testing.T) {
	t.Parallel()
	clk := &fakeClock{now: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)}
	home := t.TempDir()
	store := journalout.NewFileEntryStore(filepath.Join(home, "journal.json"))

	projector, err := journalout.NewSQLiteEntryProjector(filepath.Join(home, "selfforge.db"))
	if err != nil {
		t.Fatalf("open projection: %v", err)
	}
	svc := service.NewJournalService(clk, &seqID{}, store, projector, journalout.NewForgeNoteWriter(home))
	uc := usecase.NewInteractor(svc)

	appendEntry(t, uc, "one", 1)
	appendEntry(t, uc, "two", 2)

	// Wipe the projection, then rebuild it from the document.
	if err := projector.Reset(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	score, err := uc.Confidence(context.Background())
	if err != nil {
		t.Fatalf("confidence: %v", err)
	}
	if score.TotalCoins != 0 {
		t.Fatalf("projection should be empty after reset, got %+v", score)
	}

	if err := uc.Reindex(context.Background()); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	score, err = uc.Confidence(context.Background())
	if err != nil {
		t.Fatalf("confidence after reindex: %v", err)
	}
	if score.TotalCoins != 3 {
		t.Fatalf("expected 3 coins after reindex, got %+v", score)
	}
	entries, err := uc.History(context.Background(), dto.HistoryInput{})
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(entries) != 2 || entries[0].TaskName != "two" {
		t.Fatalf("unexpected rebuilt history: %+v", entries)
	}
}
