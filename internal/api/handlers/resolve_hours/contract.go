package resolve_hours

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/service/businesshours/models"
)

type HoursService interface {
	GetEffectiveHours(ctx context.Context, date time.Time) (*models.EffectiveHoursResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
