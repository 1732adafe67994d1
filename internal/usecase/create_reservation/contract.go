package create_reservation

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
}

// HoursResolver вычисляет итоговые часы работы салона на дату
type HoursResolver interface {
	Resolve(ctx context.Context, date time.Time) (domain.EffectiveHours, error)
}

// ConflictCache кэш индекса конфликтов, сбрасываемый при каждом изменении бронирований
type ConflictCache interface {
	Invalidate(ctx context.Context)
}

// MetricsRecorder учет найденных конфликтов
type MetricsRecorder interface {
	IncConflict(conflictType, severity string)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
