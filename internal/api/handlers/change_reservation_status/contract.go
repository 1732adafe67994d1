package change_reservation_status

import (
	"context"

	changeStatus "github.com/devbada/sisters-salon-reservation-sub001/internal/usecase/change_reservation_status"
)

type ChangeStatusUseCase interface {
	Execute(ctx context.Context, req *changeStatus.Request) (*changeStatus.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
