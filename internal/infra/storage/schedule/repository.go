package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/psqlbuilder"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/txmanager"
)

// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
const uniqueViolation = "23505"

// Repository репозиторий расписания салона: недельные часы, особые часы и праздники
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListRegularHours получает недельное расписание, упорядоченное по дню недели
func (r *Repository) ListRegularHours(ctx context.Context) ([]domain.RegularHours, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"day_of_week",
		"is_open",
		"open_time",
		"close_time",
		"break_start",
		"break_end",
		"updated_at",
	).
		From("regular_hours").
		OrderBy("day_of_week ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListRegularHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRegularHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.RegularHours, 0, 7)
	for rows.Next() {
		var h domain.RegularHours
		if err := rows.Scan(
			&h.DayOfWeek,
			&h.IsOpen,
			&h.OpenTime,
			&h.CloseTime,
			&h.BreakStart,
			&h.BreakEnd,
			&h.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListRegularHours - scan row: %v", ErrScanRow, err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRegularHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpsertRegularHours сохраняет часы работы переданных дней недели одним запросом.
// Дни, которых нет в hours, не изменяются.
func (r *Repository) UpsertRegularHours(ctx context.Context, hours []domain.RegularHours) error {
	if len(hours) == 0 {
		return nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert("regular_hours").
		Columns("day_of_week", "is_open", "open_time", "close_time", "break_start", "break_end", "updated_at")
	for _, h := range hours {
		insert = insert.Values(h.DayOfWeek, h.IsOpen, h.OpenTime, h.CloseTime, h.BreakStart, h.BreakEnd, squirrel.Expr("NOW()"))
	}

	query, args, err := insert.
		Suffix(`ON CONFLICT (day_of_week) DO UPDATE SET
			is_open = EXCLUDED.is_open,
			open_time = EXCLUDED.open_time,
			close_time = EXCLUDED.close_time,
			break_start = EXCLUDED.break_start,
			break_end = EXCLUDED.break_end,
			updated_at = EXCLUDED.updated_at`).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpsertRegularHours - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertRegularHours - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListSpecialHours получает особые часы работы за период (границы включительно, nil - без ограничения)
func (r *Repository) ListSpecialHours(ctx context.Context, from, to *time.Time) ([]domain.SpecialHours, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"date",
		"type",
		"open_time",
		"close_time",
		"break_start",
		"break_end",
		"reason",
		"created_at",
	).
		From("special_hours").
		OrderBy("date ASC", "created_at ASC", "id ASC")

	if from != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *from})
	}
	if to != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *to})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListSpecialHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.SpecialHours, 0)
	for rows.Next() {
		var s domain.SpecialHours
		if err := rows.Scan(
			&s.ID,
			&s.Date,
			&s.Type,
			&s.OpenTime,
			&s.CloseTime,
			&s.BreakStart,
			&s.BreakEnd,
			&s.Reason,
			&s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListSpecialHours - scan row: %v", ErrScanRow, err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListSpecialHours - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CreateSpecialHours создает особые часы работы на дату
func (r *Repository) CreateSpecialHours(ctx context.Context, special *domain.SpecialHours) (*domain.SpecialHours, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("special_hours").
		Columns("date", "type", "open_time", "close_time", "break_start", "break_end", "reason").
		Values(special.Date, special.Type, special.OpenTime, special.CloseTime, special.BreakStart, special.BreakEnd, special.Reason).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecialHours - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&special.ID, &special.CreatedAt)
	if isUniqueViolation(err) {
		return nil, ErrSpecialHoursExists
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateSpecialHours - execute insert: %v", ErrExecQuery, err)
	}

	return special, nil
}

// DeleteSpecialHours удаляет особые часы работы
func (r *Repository) DeleteSpecialHours(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("special_hours").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteSpecialHours - build delete query: %v", ErrBuildQuery, err)
	}

	deleted, err := execRowsAffected(ctx, executor, query, args, "DeleteSpecialHours")
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSpecialHoursNotFound
	}
	return nil
}

// ListHolidays получает все праздники (повторяющиеся нужны для любой даты, поэтому без фильтра по периоду)
func (r *Repository) ListHolidays(ctx context.Context) ([]domain.Holiday, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "name", "is_recurring", "is_closed", "created_at").
		From("holidays").
		OrderBy("date ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Holiday, 0)
	for rows.Next() {
		var h domain.Holiday
		if err := rows.Scan(&h.ID, &h.Date, &h.Name, &h.IsRecurring, &h.IsClosed, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListHolidays - scan row: %v", ErrScanRow, err)
		}
		result = append(result, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListHolidays - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// CreateHoliday создает праздник
func (r *Repository) CreateHoliday(ctx context.Context, holiday *domain.Holiday) (*domain.Holiday, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("holidays").
		Columns("date", "name", "is_recurring", "is_closed").
		Values(holiday.Date, holiday.Name, holiday.IsRecurring, holiday.IsClosed).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&holiday.ID, &holiday.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: CreateHoliday - execute insert: %v", ErrExecQuery, err)
	}

	return holiday, nil
}

// DeleteHoliday удаляет праздник
func (r *Repository) DeleteHoliday(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("holidays").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteHoliday - build delete query: %v", ErrBuildQuery, err)
	}

	deleted, err := execRowsAffected(ctx, executor, query, args, "DeleteHoliday")
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrHolidayNotFound
	}
	return nil
}

func execRowsAffected(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	return rowsAffected, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
