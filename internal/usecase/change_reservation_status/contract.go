package change_reservation_status

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/internal/scheduling/status"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, expected, status domain.ReservationStatus, changedBy string, changedAt time.Time) error
	AddHistory(ctx context.Context, record *domain.StatusHistory) (*domain.StatusHistory, error)
}

// HoursResolver вычисляет итоговые часы работы салона на дату
type HoursResolver interface {
	Resolve(ctx context.Context, date time.Time) (domain.EffectiveHours, error)
}

// StatusMachine таблица переходов статусов
type StatusMachine interface {
	Transition(reservation domain.Reservation, req status.Request) (domain.Reservation, domain.StatusHistory, error)
	AllowedTransitions(from domain.ReservationStatus) []domain.ReservationStatus
}

// ConflictCache кэш индекса конфликтов, сбрасываемый при каждом изменении бронирований
type ConflictCache interface {
	Invalidate(ctx context.Context)
}

// MetricsRecorder учет переходов статусов
type MetricsRecorder interface {
	IncTransition(from, to string)
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
