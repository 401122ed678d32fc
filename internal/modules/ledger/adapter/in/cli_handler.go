package in

import (
	"context"

	"selfforge/internal/modules/ledger/dto"
	ledgerin "selfforge/internal/modules/ledger/port/in"
)

type CLIHandler struct {
	usecase ledgerin.Usecase
}

func NewCLIHandler(usecase ledgerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) State(ctx context.Context) (dto.StateOutput, error) {
	return h.usecase.State(ctx)
}

func (h CLIHandler) Purchase(ctx context.Context, itemID string) (dto.PurchaseOutput, error) {
	return h.usecase.Purchase(ctx, dto.PurchaseInput{ItemID: itemID})
}

func (h CLIHandler) Catalog(ctx context.Context) ([]dto.ItemOutput, error) {
	return h.usecase.Catalog(ctx)
}
