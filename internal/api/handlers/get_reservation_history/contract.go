package get_reservation_history

import (
	"context"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/reservations/models"
)

type ReservationService interface {
	GetHistory(ctx context.Context, id int64) (*models.HistoryListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
