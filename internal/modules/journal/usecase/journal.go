package usecase

import (
	"context"

	"selfforge/internal/modules/journal/domain"
	"selfforge/internal/modules/journal/dto"
	journalin "selfforge/internal/modules/journal/port/in"
	"selfforge/internal/modules/journal/service"
)

type Interactor struct {
	svc *service.JournalService
}

func NewInteractor(svc *service.JournalService) journalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Append(ctx context.Context, input dto.AppendInput) (dto.EntryOutput, error) {
	entry, notePath, err := i.svc.Append(ctx, input.TaskName, input.DurationSeconds, input.CoinsEarned, input.Feeling, input.Advisory)
	if err != nil {
		return dto.EntryOutput{}, err
	}
	out := toEntryOutput(entry)
	out.NotePath = notePath
	return out, nil
}

func (i *Interactor) History(ctx context.Context, input dto.HistoryInput) ([]dto.EntryOutput, error) {
	entries, err := i.svc.History(ctx, input.Limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryOutput, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toEntryOutput(entry))
	}
	return out, nil
}

func (i *Interactor) DailyTotals(ctx context.Context, windowDays int) ([]dto.DayTotalOutput, error) {
	totals, err := i.svc.DailyTotals(ctx, windowDays)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DayTotalOutput, 0, len(totals))
	for _, total := range totals {
		out = append(out, dto.DayTotalOutput{
			Day:   total.Day,
			Label: total.Day.Format("Mon"),
			Coins: total.Coins,
		})
	}
	return out, nil
}

func (i *Interactor) Confidence(ctx context.Context) (dto.ConfidenceOutput, error) {
	score, total, err := i.svc.Confidence(ctx)
	if err != nil {
		return dto.ConfidenceOutput{}, err
	}
	return dto.ConfidenceOutput{Score: score, TotalCoins: total}, nil
}

func (i *Interactor) Reindex(ctx context.Context) error {
	return i.svc.Reindex(ctx)
}

func toEntryOutput(entry domain.Entry) dto.EntryOutput {
	return dto.EntryOutput{
		ID:              entry.ID,
		CompletedAt:     entry.CompletedAt,
		TaskName:        entry.TaskName,
		DurationSeconds: entry.DurationSeconds,
		CoinsEarned:     entry.CoinsEarned,
		Feeling:         entry.Feeling,
		Advisory:        entry.Advisory,
	}
}
