package in

import (
	"context"

	"selfforge/internal/modules/crucible/dto"
	cruciblein "selfforge/internal/modules/crucible/port/in"
)

type CLIHandler struct {
	usecase cruciblein.Usecase
}

func NewCLIHandler(usecase cruciblein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context, taskName string) (dto.CrucibleOutput, error) {
	return h.usecase.Start(ctx, dto.StartInput{TaskName: taskName})
}

func (h CLIHandler) Status(ctx context.Context) (dto.CrucibleOutput, error) {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) (dto.CrucibleOutput, error) {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.CrucibleOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) error {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Run(ctx context.Context) (dto.CrucibleOutput, error) {
	return h.usecase.Run(ctx)
}

func (h CLIHandler) Advisory(ctx context.Context) (string, error) {
	return h.usecase.Advisory(ctx)
}

func (h CLIHandler) Finalize(ctx context.Context, feeling string) (dto.FinalizeOutput, error) {
	return h.usecase.Finalize(ctx, dto.FinalizeInput{Feeling: feeling})
}
