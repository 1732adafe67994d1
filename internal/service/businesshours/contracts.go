package businesshours

import (
	"context"
	"time"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
)

// ScheduleRepository интерфейс репозитория расписания
type ScheduleRepository interface {
	ListRegularHours(ctx context.Context) ([]domain.RegularHours, error)
	UpsertRegularHours(ctx context.Context, hours []domain.RegularHours) error
	ListSpecialHours(ctx context.Context, from, to *time.Time) ([]domain.SpecialHours, error)
	CreateSpecialHours(ctx context.Context, special *domain.SpecialHours) (*domain.SpecialHours, error)
	DeleteSpecialHours(ctx context.Context, id int64) error
	ListHolidays(ctx context.Context) ([]domain.Holiday, error)
	CreateHoliday(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error)
	DeleteHoliday(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
