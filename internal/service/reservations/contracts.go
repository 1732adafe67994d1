package reservations

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	Update(ctx context.Context, reservation *domain.Reservation) error
	Delete(ctx context.Context, id int64) error
	GetHistory(ctx context.Context, reservationID int64) ([]domain.StatusHistory, error)
}

// HoursResolver вычисляет итоговые часы работы салона на дату
type HoursResolver interface {
	Resolve(ctx context.Context, date time.Time) (domain.EffectiveHours, error)
}

// ConflictCache кэш индекса конфликтов, сбрасываемый при каждом изменении бронирований
type ConflictCache interface {
	Invalidate(ctx context.Context)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
