package out

import (
	"context"

	"selfforge/internal/modules/crucible/domain"
)

// ActiveCrucibleStore persists the single in-flight session across process
// restarts.
type ActiveCrucibleStore interface {
	Save(ctx context.Context, active domain.ActiveCrucible) error
	Load(ctx context.Context) (domain.ActiveCrucible, error)
	Clear(ctx context.Context) error
}

// AdvisoryProvider asks the oracle for a short line about a finished task.
// Implementations must resolve to non-empty text within the context deadline
// or report an error; they never block indefinitely.
type AdvisoryProvider interface {
	Generate(ctx context.Context, taskName string) (string, error)
}
