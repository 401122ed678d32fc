package service

import (
	"context"
	"errors"

	"selfforge/internal/modules/ledger/domain"
	ledgerout "selfforge/internal/modules/ledger/port/out"
	"selfforge/internal/platform/clock"
	apperrors "selfforge/internal/platform/errors"
)

// LedgerService applies reward mutations and persists the state document
// after every successful one. A failed mutation leaves the stored state
// untouched.
type LedgerService struct {
	clock clock.Clock
	store ledgerout.StateStore
}

func NewLedgerService(clk clock.Clock, store ledgerout.StateStore) *LedgerService {
	return &LedgerService{clock: clk, store: store}
}

// State loads the ledger, seeding and persisting first-run defaults.
func (s *LedgerService) State(ctx context.Context) (domain.UserState, error) {
	state, err := s.store.Load(ctx)
	if errors.Is(err, apperrors.ErrNotInitialized) {
		state = domain.Seed(s.clock.Now())
		if err := s.store.Save(ctx, state); err != nil {
			return domain.UserState{}, err
		}
		return state, nil
	}
	if err != nil {
		return domain.UserState{}, err
	}
	return state, nil
}

func (s *LedgerService) Grant(ctx context.Context, coins int) (domain.UserState, error) {
	state, err := s.State(ctx)
	if err != nil {
		return domain.UserState{}, err
	}
	state, err = state.Grant(coins, s.clock.Now())
	if err != nil {
		return domain.UserState{}, err
	}
	if err := s.store.Save(ctx, state); err != nil {
		return domain.UserState{}, err
	}
	return state, nil
}

func (s *LedgerService) Spend(ctx context.Context, cost int) (domain.UserState, error) {
	state, err := s.State(ctx)
	if err != nil {
		return domain.UserState{}, err
	}
	state, err = state.Spend(cost)
	if err != nil {
		return domain.UserState{}, err
	}
	if err := s.store.Save(ctx, state); err != nil {
		return domain.UserState{}, err
	}
	return state, nil
}
