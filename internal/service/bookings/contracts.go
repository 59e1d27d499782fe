package bookings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/events"
	reconcilerModels "github.com/m04kA/SMC-ParkingService/internal/service/reconciler/models"
)

// ReservationRepository интерфейс хранилища бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	Update(ctx context.Context, id int64, patch domain.ReservationPatch) error
	Delete(ctx context.Context, id int64) error
}

// SlotRepository интерфейс реестра парковочных мест
type SlotRepository interface {
	SetStatus(ctx context.Context, location, slotID string, status domain.SlotStatus, bookedBy *string) error
}

// Reconciler проход реконсиляции перед чтением
type Reconciler interface {
	Reconcile(ctx context.Context, location *string) (*reconcilerModels.Report, error)
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
