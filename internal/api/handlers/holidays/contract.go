package holidays

import (
	"context"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
)

type HolidayService interface {
	ListHolidays(ctx context.Context) (*models.HolidayListResponse, error)
	CreateHoliday(ctx context.Context, req *models.CreateHolidayRequest) (*models.HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
