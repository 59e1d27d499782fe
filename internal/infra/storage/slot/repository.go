package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/psqlbuilder"
)

const tableName = "parking_slots"

var columns = []string{
	"id",
	"slot_id",
	"location",
	"floor",
	"status",
	"booked_by",
	"created_at",
}

// Repository репозиторий парковочных мест
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория парковочных мест
func NewRepository(db DBExecutor, dialect psqlbuilder.Dialect) *Repository {
	return &Repository{db: db, qb: psqlbuilder.New(dialect)}
}

// List возвращает снимок мест по фильтру.
// Внутри транзакции строки блокируются (FOR UPDATE), чтобы реконсиляция
// и создание бронирования не перезаписывали друг друга
func (r *Repository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From(tableName).
		OrderBy("location ASC, slot_id ASC")

	if filter.Location != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"location": *filter.Location})
	}
	if filter.Floor != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"floor": *filter.Floor})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.SlotID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"slot_id": *filter.SlotID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = r.qb.ForUpdate(selectBuilder)
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

	slots := make([]*domain.Slot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Get получает место по локации и идентификатору
func (r *Repository) Get(ctx context.Context, location, slotID string) (*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"location": location, "slot_id": slotID})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = r.qb.ForUpdate(selectBuilder)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// SetStatus перезаписывает статус места. Повторная запись того же статуса ничего не меняет
func (r *Repository) SetStatus(ctx context.Context, location, slotID string, status domain.SlotStatus, bookedBy *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update(tableName).
		Set("status", string(status)).
		Set("booked_by", nullString(bookedBy)).
		Where(squirrel.Eq{"location": location, "slot_id": slotID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// EnsureExists вставляет место, если его ещё нет. Возвращает true, если запись создана
func (r *Repository) EnsureExists(ctx context.Context, slot *domain.Slot) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Insert(tableName).
		Columns("slot_id", "location", "floor", "status", "booked_by", "created_at").
		Values(slot.SlotID, slot.Location, slot.Floor, string(slot.Status), nullString(slot.BookedBy), slot.CreatedAt).
		Suffix("ON CONFLICT (location, slot_id) DO NOTHING").
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: EnsureExists - build insert query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: EnsureExists - execute insert: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: EnsureExists - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// Rename меняет идентификатор места (нормализация старых идентификаторов)
func (r *Repository) Rename(ctx context.Context, id int64, newSlotID string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update(tableName).
		Set("slot_id", newSlotID).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Rename - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Rename - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Rename - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row scanner) (*domain.Slot, error) {
	var slot domain.Slot
	var createdAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.SlotID,
		&slot.Location,
		&slot.Floor,
		&slot.Status,
		&slot.BookedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	return &slot, nil
}
