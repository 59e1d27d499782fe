package stats

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reconcilerModels "github.com/m04kA/SMC-ParkingService/internal/service/reconciler/models"
)

// StatsRepository агрегаты по бронированиям и местам
type StatsRepository interface {
	BookingStats(ctx context.Context) (*domain.BookingStats, error)
}

// ReservationRepository интерфейс хранилища бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// Reconciler проход реконсиляции перед чтением
type Reconciler interface {
	Reconcile(ctx context.Context, location *string) (*reconcilerModels.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
