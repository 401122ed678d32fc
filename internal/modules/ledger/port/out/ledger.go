package out

import (
	"context"

	"selfforge/internal/modules/ledger/domain"
)

// StateStore persists the user state document. Load on a fresh install
// reports apperrors.ErrNotInitialized so the caller can seed.
type StateStore interface {
	Load(ctx context.Context) (domain.UserState, error)
	Save(ctx context.Context, state domain.UserState) error
}
