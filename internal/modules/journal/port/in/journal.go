package in

import (
	"context"

	"selfforge/internal/modules/journal/dto"
)

type Usecase interface {
	Append(ctx context.Context, input dto.AppendInput) (dto.EntryOutput, error)
	History(ctx context.Context, input dto.HistoryInput) ([]dto.EntryOutput, error)
	DailyTotals(ctx context.Context, windowDays int) ([]dto.DayTotalOutput, error)
	Confidence(ctx context.Context) (dto.ConfidenceOutput, error)
	Reindex(ctx context.Context) error
}
