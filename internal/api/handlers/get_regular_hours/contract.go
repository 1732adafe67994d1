package get_regular_hours

import (
	"context"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
)

type HoursService interface {
	GetRegularHours(ctx context.Context) (*models.RegularHoursListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
