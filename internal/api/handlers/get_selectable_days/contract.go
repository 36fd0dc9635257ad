package get_selectable_days

import (
	"context"

	getSelectableDays "github.com/mcenturion/turnos-api/internal/usecase/get_selectable_days"
)

type GetSelectableDaysUseCase interface {
	Execute(ctx context.Context, req *getSelectableDays.Request) (*getSelectableDays.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
