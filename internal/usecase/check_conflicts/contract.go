package check_conflicts

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
}

// HoursResolver вычисляет итоговые часы работы салона на дату
type HoursResolver interface {
	Resolve(ctx context.Context, date time.Time) (domain.EffectiveHours, error)
}

// MetricsRecorder учет найденных конфликтов
type MetricsRecorder interface {
	IncConflict(conflictType, severity string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
