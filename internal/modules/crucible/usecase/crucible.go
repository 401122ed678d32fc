package usecase

import (
	"context"

	"selfforge/internal/modules/crucible/domain"
	"selfforge/internal/modules/crucible/dto"
	cruciblein "selfforge/internal/modules/crucible/port/in"
	"selfforge/internal/modules/crucible/service"
	journaldto "selfforge/internal/modules/journal/dto"
	journalin "selfforge/internal/modules/journal/port/in"
	ledgerdto "selfforge/internal/modules/ledger/dto"
	ledgerin "selfforge/internal/modules/ledger/port/in"
)

// Interactor routes session events: completion feeds the ledger grant and the
// journal append, in that order, before the crucible is cleared.
type Interactor struct {
	svc     *service.CrucibleService
	ledger  ledgerin.Usecase
	journal journalin.Usecase
}

func NewInteractor(svc *service.CrucibleService, ledger ledgerin.Usecase, journal journalin.Usecase) cruciblein.Usecase {
	return &Interactor{svc: svc, ledger: ledger, journal: journal}
}

func (i *Interactor) Start(ctx context.Context, input dto.StartInput) (dto.CrucibleOutput, error) {
	active, err := i.svc.Start(ctx, input.TaskName)
	if err != nil {
		return dto.CrucibleOutput{}, err
	}
	return toOutput(active, active.Snapshot(active.ResumedAt)), nil
}

func (i *Interactor) Status(ctx context.Context) (dto.CrucibleOutput, error) {
	active, timer, err := i.svc.Status(ctx)
	if err != nil {
		return dto.CrucibleOutput{}, err
	}
	return toOutput(active, timer), nil
}

func (i *Interactor) Pause(ctx context.Context) (dto.CrucibleOutput, error) {
	active, err := i.svc.Pause(ctx)
	if err != nil {
		return dto.CrucibleOutput{}, err
	}
	return toOutput(active, active.Snapshot(active.ResumedAt)), nil
}

func (i *Interactor) Resume(ctx context.Context) (dto.CrucibleOutput, error) {
	active, err := i.svc.Resume(ctx)
	if err != nil {
		return dto.CrucibleOutput{}, err
	}
	return toOutput(active, active.Snapshot(active.ResumedAt)), nil
}

func (i *Interactor) Reset(ctx context.Context) error {
	return i.svc.Reset(ctx)
}

func (i *Interactor) Run(ctx context.Context) (dto.CrucibleOutput, error) {
	active, err := i.svc.Run(ctx)
	if err != nil {
		return dto.CrucibleOutput{}, err
	}
	return toOutput(active, active.Snapshot(active.ResumedAt)), nil
}

func (i *Interactor) Advisory(ctx context.Context) (string, error) {
	return i.svc.Advisory(ctx)
}

// Finalize turns the completed session into the permanent record: grant the
// flat reward, append the journal entry, then return the timer to idle.
// The two documents are not written atomically: if the append fails after the
// grant, the crucible stays active and a retried finalize grants again.
func (i *Interactor) Finalize(ctx context.Context, input dto.FinalizeInput) (dto.FinalizeOutput, error) {
	active, advisory, err := i.svc.Finalize(ctx)
	if err != nil {
		return dto.FinalizeOutput{}, err
	}

	state, err := i.ledger.Grant(ctx, ledgerdto.GrantInput{Coins: domain.SessionReward})
	if err != nil {
		return dto.FinalizeOutput{}, err
	}

	entry, err := i.journal.Append(ctx, journaldto.AppendInput{
		TaskName:        active.TaskName,
		DurationSeconds: domain.SessionSeconds,
		CoinsEarned:     domain.SessionReward,
		Feeling:         input.Feeling,
		Advisory:        advisory,
	})
	if err != nil {
		return dto.FinalizeOutput{}, err
	}

	if err := i.svc.Clear(ctx); err != nil {
		return dto.FinalizeOutput{}, err
	}

	return dto.FinalizeOutput{
		EntryID:     entry.ID,
		TaskName:    active.TaskName,
		Advisory:    advisory,
		CoinsEarned: domain.SessionReward,
		Coins:       state.Coins,
		Streak:      state.Streak,
	}, nil
}

func toOutput(active domain.ActiveCrucible, timer domain.Timer) dto.CrucibleOutput {
	return dto.CrucibleOutput{
		ID:        active.ID,
		TaskName:  active.TaskName,
		State:     string(timer.State),
		Remaining: timer.Remaining,
		StartedAt: active.StartedAt,
		Advisory:  active.Advisory,
	}
}
