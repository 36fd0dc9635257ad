package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/mcenturion/turnos-api/internal/domain"
	"github.com/mcenturion/turnos-api/pkg/dbmetrics"
	"github.com/mcenturion/turnos-api/pkg/psqlbuilder"
	"github.com/mcenturion/turnos-api/pkg/types"
)

const (
	// Имена ограничений из migrations/001_init.sql
	slotUniqueIndex = "reservations_active_slot_idx"
	codeUniqueIndex = "reservations_code_key"

	uniqueViolationCode = "23505"
)

var reservationColumns = []string{
	"id",
	"code",
	"customer_name",
	"whatsapp",
	"service_id",
	"service_name",
	"reservation_date",
	"start_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её.
// Нарушение частичного уникального индекса по слоту транслируется в ErrSlotTaken,
// коллизия кода бронирования - в ErrCodeTaken.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("reservations").
		Columns(
			"code",
			"customer_name",
			"whatsapp",
			"service_id",
			"service_name",
			"reservation_date",
			"start_time",
			"status",
		).
		Values(
			res.Code,
			res.Name,
			res.Whatsapp,
			res.ServiceID,
			res.ServiceName,
			res.Date,
			res.Time,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&res.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return nil, uniqueErr
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования с фильтрацией.
// Поддерживает фильтрацию по:
// - Точной дате (Date)
// - Диапазону дат [StartDate, EndDate) - для месячных запросов календаря
// - Статусу (Status)
// - Услуге (ServiceID)
// - Только удерживающим слот статусам (OnlyHeld: pending, approved)
// Результат упорядочен по (дата, время) по возрастанию.
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(reservationColumns...).
		From("reservations").
		OrderBy("reservation_date ASC, start_time ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"reservation_date": *filter.Date})
	}
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"reservation_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		// Конец диапазона исключается
		selectBuilder = selectBuilder.Where(squirrel.Lt{"reservation_date": *filter.EndDate})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}
	if filter.OnlyHeld {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": []string{
			string(domain.StatusPending),
			string(domain.StatusApproved),
		}})
	}

	// Внутри транзакции с точной датой блокируем строки:
	// этот путь используется проверкой доступности перед записью
	if dbmetrics.IsInTransaction(ctx) && filter.Date != nil {
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

	return scanReservations(rows)
}

// UpdateStatus обновляет статус бронирования.
// Легальность перехода проверяет вызывающий слой, репозиторий пишет безусловно.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return uniqueErr
		}
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "UpdateStatus")
}

// UpdateSchedule меняет дату и время бронирования (примитив переноса).
// Проверка доступности нового слота - ответственность вызывающего слоя;
// здесь ловится только нарушение уникального индекса.
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("reservation_date", date).
		Set("start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if uniqueErr := mapUniqueViolation(err); uniqueErr != nil {
			return uniqueErr
		}
		return fmt.Errorf("%w: UpdateSchedule - execute update: %v", ErrExecQuery, err)
	}

	return requireRowsAffected(result, "UpdateSchedule")
}

// DetachService отвязывает бронирования от услуги: service_id -> NULL,
// денормализованный снимок названия остается нетронутым.
// Вызывается в транзакции удаления услуги.
func (r *Repository) DetachService(ctx context.Context, serviceID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("service_id", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DetachService - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DetachService - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateServiceName каскадирует новое название услуги на снимки в бронированиях.
// Вызывается в транзакции переименования услуги.
func (r *Repository) UpdateServiceName(ctx context.Context, serviceID int64, name string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("reservations").
		Set("service_name", name).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"service_id": serviceID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateServiceName - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateServiceName - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// mapUniqueViolation транслирует нарушение уникальных ограничений postgres
// в доменные ошибки репозитория. Возвращает nil для прочих ошибок.
func mapUniqueViolation(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || string(pqErr.Code) != uniqueViolationCode {
		return nil
	}
	switch pqErr.Constraint {
	case slotUniqueIndex:
		return ErrSlotTaken
	case codeUniqueIndex:
		return ErrCodeTaken
	default:
		return nil
	}
}

func requireRowsAffected(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.Name,
		&res.Whatsapp,
		&res.ServiceID,
		&res.ServiceName,
		&res.Date,
		&res.Time,
		&res.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.CreatedAt = createdAt.Time
	res.UpdatedAt = updatedAt.Time

	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)

	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}
