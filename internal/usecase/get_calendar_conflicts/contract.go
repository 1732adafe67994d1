package get_calendar_conflicts

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error)
}

// ConflictCache кэш индекса конфликтов за период
type ConflictCache interface {
	Lookup(ctx context.Context, from, to time.Time) (map[string][]domain.ConflictRecord, int64, bool)
	Store(ctx context.Context, version int64, from, to time.Time, index map[string][]domain.ConflictRecord)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
