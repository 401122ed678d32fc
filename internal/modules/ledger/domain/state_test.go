package domain_test

import (
	"errors"
	"testing"
	"time"

	"selfforge/internal/modules/ledger/domain"
	apperrors "selfforge/internal/platform/errors"
)

func TestSeedStartsWithTenCoinsAndAThreeDayStreak(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	state := domain.Seed(now)
	if state.Coins != 10 || state.Streak != 3 {
		t.Fatalf("unexpected seed: %+v", state)
	}
	if state.LastActiveDate == nil || !state.LastActiveDate.Equal(now) {
		t.Fatalf("seed must stamp the activity date: %+v", state.LastActiveDate)
	}
}

func TestGrantAddsCoinsAndBumpsStreakEveryTime(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	state := domain.Seed(now)

	// Two grants on the same day both bump the streak; see StreakPolicy.
	for i := 1; i <= 2; i++ {
		next, err := state.Grant(1, now)
		if err != nil {
			t.Fatalf("grant %d: %v", i, err)
		}
		if next.Coins != state.Coins+1 || next.Streak != state.Streak+1 {
			t.Fatalf("grant %d: %+v -> %+v", i, state, next)
		}
		state = next
	}
	if state.Coins != 12 || state.Streak != 5 {
		t.Fatalf("unexpected final state: %+v", state)
	}
}

func TestGrantRejectsNegativeAmountsUnchanged(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	state := domain.Seed(now)
	got, err := state.Grant(-1, now)
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if got.Coins != state.Coins || got.Streak != state.Streak {
		t.Fatalf("rejected grant mutated state: %+v", got)
	}
}

func TestSpendNeverDrivesTheBalanceNegative(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	state := domain.Seed(now)

	state, err := state.Spend(10)
	if err != nil {
		t.Fatalf("spend to zero: %v", err)
	}
	if state.Coins != 0 {
		t.Fatalf("expected empty balance, got %d", state.Coins)
	}

	got, err := state.Spend(1)
	if !errors.Is(err, apperrors.ErrInsufficientCoins) {
		t.Fatalf("expected ErrInsufficientCoins, got %v", err)
	}
	if got.Coins != 0 {
		t.Fatalf("rejected spend mutated balance: %d", got.Coins)
	}

	if _, err := state.Spend(-5); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative cost, got %v", err)
	}
}

func TestSpendDoesNotTouchTheStreak(t *testing.T) {
	t.Parallel()
	now := time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)
	state := domain.Seed(now)
	state, err := state.Spend(5)
	if err != nil {
		t.Fatalf("spend: %v", err)
	}
	if state.Streak != 3 {
		t.Fatalf("spend changed the streak: %d", state.Streak)
	}
}

func TestCatalogLookupAndOrdering(t *testing.T) {
	t.Parallel()
	items := domain.Catalog()
	if len(items) != 4 {
		t.Fatalf("expected four items, got %d", len(items))
	}
	item, err := domain.ItemByID("rest-permit")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if item.Cost != 5 {
		t.Fatalf("unexpected cost: %+v", item)
	}
	if _, err := domain.ItemByID("philosopher-stone"); !errors.Is(err, apperrors.ErrUnknownItem) {
		t.Fatalf("expected ErrUnknownItem, got %v", err)
	}

	// The returned slice is a copy.
	items[0].Cost = 999
	again, _ := domain.ItemByID(items[0].ID)
	if again.Cost == 999 {
		t.Fatal("catalog leaked its backing array")
	}
}
