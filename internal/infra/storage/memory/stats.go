package memory

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// StatsRepository агрегаты по Store
type StatsRepository struct {
	store *Store
}

// NewStatsRepository создает репозиторий статистики
func NewStatsRepository(store *Store) *StatsRepository {
	return &StatsRepository{store: store}
}

func (r *StatsRepository) BookingStats(ctx context.Context) (*domain.BookingStats, error) {
	s := r.store
	defer s.lock(ctx)()

	stats := &domain.BookingStats{}
	for _, res := range s.reservations {
		stats.TotalBookings++
		stats.TotalRevenue += res.Amount
		if res.IsActive() {
			stats.ActiveBookings++
		}
	}
	for _, slot := range s.slots {
		if slot.IsAvailable() {
			stats.AvailableSlots++
		}
	}

	return stats, nil
}
