package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SalonBookingService/internal/domain"
	"github.com/m04kA/SMC-SalonBookingService/internal/infra/storage/pgerr"
	"github.com/m04kA/SMC-SalonBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SalonBookingService/pkg/psqlbuilder"
	"github.com/m04kA/SMC-SalonBookingService/pkg/types"
)

const (
	tableName = "appointments"

	// SlotConstraint частичный уникальный индекс (master_id, date, time) для статусов pending/confirmed
	SlotConstraint  = "appointments_master_slot_uidx"
	priceConstraint = "appointments_price_check"
)

var columns = []string{
	"id",
	"client_id",
	"master_id",
	"service_id",
	"salon_id",
	"appointment_date",
	"appointment_time",
	"status",
	"original_price",
	"discount_amount",
	"final_price",
	"promo_code_id",
	"notes",
	"created_at",
}

// Repository репозиторий для работы с записями клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую запись
// Уникальный индекс по слоту мастера срабатывает в момент вставки/коммита, поэтому
// даже при гонке двух транзакций успешной будет только одна.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"client_id",
			"master_id",
			"service_id",
			"salon_id",
			"appointment_date",
			"appointment_time",
			"status",
			"original_price",
			"discount_amount",
			"final_price",
			"promo_code_id",
			"notes",
		).
		Values(
			a.ClientID,
			a.MasterID,
			a.ServiceID,
			a.SalonID,
			types.FormatDate(a.Date),
			a.Time,
			string(a.Status),
			a.OriginalPrice,
			a.DiscountAmount,
			a.FinalPrice,
			a.PromoCodeID,
			a.Notes,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt)
	switch {
	case pgerr.IsUniqueViolation(err, SlotConstraint):
		return nil, fmt.Errorf("%w: Create - master %d at %s %s", ErrSlotTaken, a.MasterID, types.FormatDate(a.Date), a.Time)
	case pgerr.IsCheckViolation(err, priceConstraint):
		return nil, fmt.Errorf("%w: Create - %w", ErrInvalidPrice, err)
	case err != nil:
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time

	return a, nil
}

// GetByID получает запись по ID
// Внутри транзакции строка блокируется (FOR UPDATE) для последующей смены статуса
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	a, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %w", ErrScanRow, err)
	}

	return a, nil
}

// OccupiedTimes возвращает занятое время на дату с учётом необязательных фильтров
// Учитываются только записи в статусах, занимающих слот
func (r *Repository) OccupiedTimes(ctx context.Context, filter domain.OccupiedFilter) ([]types.TimeString, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("DISTINCT appointment_time").
		From(tableName).
		Where(squirrel.Eq{"appointment_date": types.FormatDate(filter.Date)}).
		Where(squirrel.Eq{"status": occupyingStatuses()})

	if filter.MasterID != nil {
		builder = builder.Where(squirrel.Eq{"master_id": *filter.MasterID})
	}
	if filter.SalonID != nil {
		builder = builder.Where(squirrel.Eq{"salon_id": *filter.SalonID})
	}
	if filter.ServiceID != nil {
		builder = builder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}

	query, args, err := builder.OrderBy("appointment_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedTimes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: OccupiedTimes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	times := make([]types.TimeString, 0)
	for rows.Next() {
		var t types.TimeString
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("%w: OccupiedTimes - scan row: %w", ErrScanRow, err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: OccupiedTimes - rows error: %w", ErrScanRow, err)
	}

	return times, nil
}

// IsSlotOccupied проверяет, занят ли слот мастера
// Внутри транзакции занимающая запись блокируется (FOR UPDATE)
func (r *Repository) IsSlotOccupied(ctx context.Context, masterID int64, date time.Time, t types.TimeString) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("id").
		From(tableName).
		Where(squirrel.Eq{
			"master_id":        masterID,
			"appointment_date": types.FormatDate(date),
			"appointment_time": t,
			"status":           occupyingStatuses(),
		}).
		Limit(1)
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: IsSlotOccupied - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: IsSlotOccupied - execute query: %w", ErrExecQuery, err)
	}

	return true, nil
}

// ListByMasterAndDate возвращает все записи мастера на дату (любые статусы), по времени
func (r *Repository) ListByMasterAndDate(ctx context.Context, masterID int64, date time.Time) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"master_id": masterID, "appointment_date": types.FormatDate(date)}).
		OrderBy("appointment_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMasterAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByMasterAndDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByMasterAndDate - scan row: %w", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByMasterAndDate - rows error: %w", ErrScanRow, err)
	}

	return appointments, nil
}

// UpdateStatus обновляет статус записи
// Возврат в занимающий статус может столкнуться с уникальным индексом слота
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableName).
		Set("status", string(status)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if pgerr.IsUniqueViolation(err, SlotConstraint) {
		return fmt.Errorf("%w: UpdateStatus - appointment %d", ErrSlotTaken, id)
	}
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var (
		a         domain.Appointment
		status    string
		promoID   sql.NullInt64
		createdAt sql.NullTime
	)

	err := row.Scan(
		&a.ID,
		&a.ClientID,
		&a.MasterID,
		&a.ServiceID,
		&a.SalonID,
		&a.Date,
		&a.Time,
		&status,
		&a.OriginalPrice,
		&a.DiscountAmount,
		&a.FinalPrice,
		&promoID,
		&a.Notes,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = domain.AppointmentStatus(status)
	a.Date = types.DateOnly(a.Date)
	if promoID.Valid {
		id := promoID.Int64
		a.PromoCodeID = &id
	}
	a.CreatedAt = createdAt.Time

	return &a, nil
}

func occupyingStatuses() []string {
	statuses := domain.SlotOccupyingStatuses()
	result := make([]string, len(statuses))
	for i, s := range statuses {
		result[i] = string(s)
	}
	return result
}
