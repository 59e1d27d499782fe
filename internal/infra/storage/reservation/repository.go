package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const tableName = "reservations"

var columns = []string{
	"id",
	"owner_id",
	"customer_name",
	"vehicle_number",
	"location",
	"slot_id",
	"floor",
	"booking_date",
	"start_time",
	"duration_hours",
	"start_at",
	"end_at",
	"amount",
	"status",
	"created_at",
}

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, dialect psqlbuilder.Dialect) *Repository {
	return &Repository{db: db, qb: psqlbuilder.New(dialect)}
}

// Create сохраняет бронирование, ID назначается базой.
// Если в контексте передана транзакция, запрос выполняется в ней
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now()
	}

	query, args, err := r.qb.Insert(tableName).
		Columns(
			"owner_id",
			"customer_name",
			"vehicle_number",
			"location",
			"slot_id",
			"floor",
			"booking_date",
			"start_time",
			"duration_hours",
			"start_at",
			"end_at",
			"amount",
			"status",
			"created_at",
		).
		Values(
			res.OwnerID,
			res.CustomerName,
			res.VehicleNumber,
			res.Location,
			res.SlotID,
			res.Floor,
			res.Date,
			res.StartTime,
			res.DurationHours,
			nullTime(res.StartAt),
			nullTime(res.EndAt),
			res.Amount,
			string(res.Status),
			res.CreatedAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - slot %s/%s", ErrActiveReservationExists, res.Location, res.SlotID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return res, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = r.qb.ForUpdate(selectBuilder)
	}

	query, args, err := selectBuilder.ToSql()
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

// List возвращает бронирования по фильтру в порядке создания
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From(tableName).
		OrderBy("id ASC")

	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"owner_id": *filter.OwnerID})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.Location != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location": *filter.Location})
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

	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return reservations, nil
}

// Update перезаписывает заданные в patch поля. Инварианты проверяет вызывающий код
func (r *Repository) Update(ctx context.Context, id int64, patch domain.ReservationPatch) error {
	if patch.IsEmpty() {
		return ErrEmptyPatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := r.qb.Update(tableName).Where(squirrel.Eq{"id": id})

	if patch.CustomerName != nil {
		updateBuilder = updateBuilder.Set("customer_name", *patch.CustomerName)
	}
	if patch.VehicleNumber != nil {
		updateBuilder = updateBuilder.Set("vehicle_number", *patch.VehicleNumber)
	}
	if patch.Amount != nil {
		updateBuilder = updateBuilder.Set("amount", *patch.Amount)
	}
	if patch.Date != nil {
		updateBuilder = updateBuilder.Set("booking_date", *patch.Date)
	}
	if patch.StartTime != nil {
		updateBuilder = updateBuilder.Set("start_time", *patch.StartTime)
	}
	if patch.DurationHours != nil {
		updateBuilder = updateBuilder.Set("duration_hours", *patch.DurationHours)
	}
	if patch.StartAt != nil {
		updateBuilder = updateBuilder.Set("start_at", *patch.StartAt)
	}
	if patch.EndAt != nil {
		updateBuilder = updateBuilder.Set("end_at", *patch.EndAt)
	}
	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", string(*patch.Status))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Update", query, args)
}

// TransitionStatus меняет статус только если текущий равен from.
// Возвращает false, если бронирование уже в другом статусе
func (r *Repository) TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update(tableName).
		Set("status", string(to)).
		Where(squirrel.Eq{"id": id, "status": string(from)}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: TransitionStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: TransitionStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: TransitionStatus - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Delete удаляет бронирование
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	return r.execAffectingOne(ctx, executor, "Delete", query, args)
}

func (r *Repository) execAffectingOne(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
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

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row scanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var startAt, endAt, createdAt sql.NullTime

	err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.CustomerName,
		&res.VehicleNumber,
		&res.Location,
		&res.SlotID,
		&res.Floor,
		&res.Date,
		&res.StartTime,
		&res.DurationHours,
		&startAt,
		&endAt,
		&res.Amount,
		&res.Status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	res.StartAt = startAt.Time
	res.EndAt = endAt.Time
	res.CreatedAt = createdAt.Time
	return &res, nil
}
