package in

import (
	"context"

	"selfforge/internal/modules/crucible/dto"
)

type Usecase interface {
	Start(ctx context.Context, input dto.StartInput) (dto.CrucibleOutput, error)
	Status(ctx context.Context) (dto.CrucibleOutput, error)
	Pause(ctx context.Context) (dto.CrucibleOutput, error)
	Resume(ctx context.Context) (dto.CrucibleOutput, error)
	Reset(ctx context.Context) error
	Run(ctx context.Context) (dto.CrucibleOutput, error)
	Advisory(ctx context.Context) (string, error)
	Finalize(ctx context.Context, input dto.FinalizeInput) (dto.FinalizeOutput, error)
}
