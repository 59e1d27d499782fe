package stats

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

const (
	bookingTotalsQuery = `
		SELECT
			COUNT(*) AS total_bookings,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS active_bookings,
			COALESCE(SUM(amount), 0) AS total_revenue
		FROM reservations`

	availableSlotsQuery = `SELECT COUNT(*) FROM parking_slots WHERE status = ?`
)

type bookingTotals struct {
	TotalBookings  int64   `db:"total_bookings"`
	ActiveBookings int64   `db:"active_bookings"`
	TotalRevenue   float64 `db:"total_revenue"`
}

// Repository агрегирующие запросы для администратора
type Repository struct {
	db *sqlx.DB
}

// NewRepository создает репозиторий статистики. driverName определяет формат плейсхолдеров
func NewRepository(db *sql.DB, driverName string) *Repository {
	return &Repository{db: sqlx.NewDb(db, driverName)}
}

// BookingStats считает общее и активное число бронирований, выручку и свободные места
func (r *Repository) BookingStats(ctx context.Context) (*domain.BookingStats, error) {
	var totals bookingTotals
	if err := r.db.GetContext(ctx, &totals, r.db.Rebind(bookingTotalsQuery), string(domain.ReservationActive)); err != nil {
		return nil, fmt.Errorf("%w: BookingStats - booking totals: %v", ErrExecQuery, err)
	}

	var available int64
	if err := r.db.GetContext(ctx, &available, r.db.Rebind(availableSlotsQuery), string(domain.SlotAvailable)); err != nil {
		return nil, fmt.Errorf("%w: BookingStats - available slots: %v", ErrExecQuery, err)
	}

	return &domain.BookingStats{
		TotalBookings:  totals.TotalBookings,
		ActiveBookings: totals.ActiveBookings,
		TotalRevenue:   totals.TotalRevenue,
		AvailableSlots: available,
	}, nil
}
