package usecase

import (
	"context"

	"selfforge/internal/modules/ledger/domain"
	"selfforge/internal/modules/ledger/dto"
	ledgerin "selfforge/internal/modules/ledger/port/in"
	"selfforge/internal/modules/ledger/service"
)

type Interactor struct {
	svc *service.LedgerService
}

func NewInteractor(svc *service.LedgerService) ledgerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) State(ctx context.Context) (dto.StateOutput, error) {
	state, err := i.svc.State(ctx)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toStateOutput(state), nil
}

func (i *Interactor) Grant(ctx context.Context, input dto.GrantInput) (dto.StateOutput, error) {
	state, err := i.svc.Grant(ctx, input.Coins)
	if err != nil {
		return dto.StateOutput{}, err
	}
	return toStateOutput(state), nil
}

func (i *Interactor) Purchase(ctx context.Context, input dto.PurchaseInput) (dto.PurchaseOutput, error) {
	item, err := domain.ItemByID(input.ItemID)
	if err != nil {
		return dto.PurchaseOutput{}, err
	}
	state, err := i.svc.Spend(ctx, item.Cost)
	if err != nil {
		return dto.PurchaseOutput{}, err
	}
	return dto.PurchaseOutput{
		ItemID:   item.ID,
		ItemName: item.Name,
		Cost:     item.Cost,
		Coins:    state.Coins,
	}, nil
}

func (i *Interactor) Catalog(ctx context.Context) ([]dto.ItemOutput, error) {
	state, err := i.svc.State(ctx)
	if err != nil {
		return nil, err
	}
	items := domain.Catalog()
	out := make([]dto.ItemOutput, 0, len(items))
	for _, item := range items {
		out = append(out, dto.ItemOutput{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Cost:        item.Cost,
			Icon:        item.Icon,
			Affordable:  state.Coins >= item.Cost,
		})
	}
	return out, nil
}

func toStateOutput(state domain.UserState) dto.StateOutput {
	return dto.StateOutput{
		Coins:          state.Coins,
		Streak:         state.Streak,
		LastActiveDate: state.LastActiveDate,
	}
}
