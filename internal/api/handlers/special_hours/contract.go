package special_hours

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
)

type SpecialHoursService interface {
	ListSpecialHours(ctx context.Context, from, to *time.Time) (*models.SpecialHoursListResponse, error)
	CreateSpecialHours(ctx context.Context, req *models.CreateSpecialHoursRequest) (*models.SpecialHoursResponse, error)
	DeleteSpecialHours(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
