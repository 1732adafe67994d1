package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/devbada/sisters-salon-reservation-sub001/internal/domain"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/psqlbuilder"
	"github.com/devbada/sisters-salon-reservation-sub001/pkg/txmanager"
)

var reservationColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"designer_name",
	"date",
	"time",
	"duration_minutes",
	"service",
	"status",
	"status_updated_at",
	"status_updated_by",
	"notes",
	"created_at",
	"updated_at",
}

var historyColumns = []string{
	"id",
	"reservation_id",
	"old_status",
	"new_status",
	"changed_by",
	"changed_at",
	"reason",
}

// Repository репозиторий для работы с бронированиями салона
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, reservation *domain.Reservation) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"customer_name",
			"customer_phone",
			"designer_name",
			"date",
			"time",
			"duration_minutes",
			"service",
			"status",
			"status_updated_at",
			"status_updated_by",
			"notes",
		).
		Values(
			reservation.CustomerName,
			reservation.CustomerPhone,
			reservation.DesignerName,
			reservation.Date,
			reservation.Time,
			reservation.DurationMinutes,
			reservation.Service,
			reservation.Status,
			reservation.StatusUpdatedAt,
			reservation.StatusUpdatedBy,
			reservation.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&reservation.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return reservation, nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	reservation, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return reservation, nil
}

// List получает бронирования с фильтрацией
// Поддерживает фильтрацию по периоду, дизайнеру, статусу и только активным бронированиям.
// Внутри транзакции при выборке по одному дизайнеру на одну дату строки блокируются (FOR UPDATE),
// чтобы параллельное создание не обошло проверку конфликтов.
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.Reservation, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations")

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"date": *filter.EndDate})
	}
	if filter.DesignerName != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"designer_name": *filter.DesignerName})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.ActiveOnly {
		active := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			active[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": active})
	}

	selectBuilder = selectBuilder.OrderBy("date ASC", "time ASC", "id ASC")

	singleDay := filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate)
	if txmanager.IsInTransaction(ctx) && singleDay && filter.DesignerName != nil {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	for rows.Next() {
		reservation, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, *reservation)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Update обновляет редактируемые поля бронирования (статус меняется только через UpdateStatus)
func (r *Repository) Update(ctx context.Context, reservation *domain.Reservation) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("customer_name", reservation.CustomerName).
		Set("customer_phone", reservation.CustomerPhone).
		Set("designer_name", reservation.DesignerName).
		Set("date", reservation.Date).
		Set("time", reservation.Time).
		Set("duration_minutes", reservation.DurationMinutes).
		Set("service", reservation.Service).
		Set("notes", reservation.Notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": reservation.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, query, args, "Update")
}

// UpdateStatus меняет статус бронирования, только если текущий статус равен expected.
// Если строка не найдена или статус уже другой, возвращает ErrStatusChanged.
func (r *Repository) UpdateStatus(
	ctx context.Context,
	id int64,
	expected domain.ReservationStatus,
	status domain.ReservationStatus,
	changedBy string,
	changedAt time.Time,
) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("status_updated_at", changedAt).
		Set("status_updated_by", changedBy).
		Set("updated_at", changedAt).
		Where(squirrel.Eq{"id": id, "status": expected}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	err = execAffectingOne(ctx, executor, query, args, "UpdateStatus")
	if errors.Is(err, ErrReservationNotFound) {
		return ErrStatusChanged
	}
	return err
}

// Delete удаляет бронирование вместе с историей статусов (исправление ошибочных данных)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return execAffectingOne(ctx, executor, query, args, "Delete")
}

// AddHistory добавляет запись в журнал смены статусов
func (r *Repository) AddHistory(ctx context.Context, record *domain.StatusHistory) (*domain.StatusHistory, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservation_status_history").
		Columns("reservation_id", "old_status", "new_status", "changed_by", "changed_at", "reason").
		Values(record.ReservationID, record.OldStatus, record.NewStatus, record.ChangedBy, record.ChangedAt, record.Reason).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AddHistory - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&record.ID); err != nil {
		return nil, fmt.Errorf("%w: AddHistory - execute insert: %v", ErrExecQuery, err)
	}

	return record, nil
}

// GetHistory получает журнал смены статусов бронирования в хронологическом порядке
func (r *Repository) GetHistory(ctx context.Context, reservationID int64) ([]domain.StatusHistory, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(historyColumns...).
		From("reservation_status_history").
		Where(squirrel.Eq{"reservation_id": reservationID}).
		OrderBy("changed_at ASC", "id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetHistory - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetHistory - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	history := make([]domain.StatusHistory, 0)
	for rows.Next() {
		var h domain.StatusHistory
		if err := rows.Scan(
			&h.ID,
			&h.ReservationID,
			&h.OldStatus,
			&h.NewStatus,
			&h.ChangedBy,
			&h.ChangedAt,
			&h.Reason,
		); err != nil {
			return nil, fmt.Errorf("%w: GetHistory - scan row: %v", ErrScanRow, err)
		}
		history = append(history, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetHistory - rows error: %v", ErrScanRow, err)
	}

	return history, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var reservation domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&reservation.ID,
		&reservation.CustomerName,
		&reservation.CustomerPhone,
		&reservation.DesignerName,
		&reservation.Date,
		&reservation.Time,
		&reservation.DurationMinutes,
		&reservation.Service,
		&reservation.Status,
		&reservation.StatusUpdatedAt,
		&reservation.StatusUpdatedBy,
		&reservation.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	reservation.CreatedAt = createdAt.Time
	reservation.UpdatedAt = updatedAt.Time

	return &reservation, nil
}

func execAffectingOne(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}
