package in

import (
	"context"

	"selfforge/internal/modules/ledger/dto"
)

type Usecase interface {
	State(ctx context.Context) (dto.StateOutput, error)
	Grant(ctx context.Context, input dto.GrantInput) (dto.StateOutput, error)
	Purchase(ctx context.Context, input dto.PurchaseInput) (dto.PurchaseOutput, error)
	Catalog(ctx context.Context) ([]dto.ItemOutput, error)
}
