package in

import (
	"context"

	"selfforge/internal/modules/journal/dto"
	journalin "selfforge/internal/modules/journal/port/in"
)

type CLIHandler struct {
	usecase journalin.Usecase
}

func NewCLIHandler(usecase journalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.EntryOutput, error) {
	return h.usecase.History(ctx, dto.HistoryInput{Limit: limit})
}

func (h CLIHandler) DailyTotals(ctx context.Context, windowDays int) ([]dto.DayTotalOutput, error) {
	return h.usecase.DailyTotals(ctx, windowDays)
}

func (h CLIHandler) Confidence(ctx context.Context) (dto.ConfidenceOutput, error) {
	return h.usecase.Confidence(ctx)
}

func (h CLIHandler) Reindex(ctx context.Context) error {
	return h.usecase.Reindex(ctx)
}
