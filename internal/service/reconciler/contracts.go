package reconciler

import (
	"context"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/events"
	"github.com/m04kA/SMC-ParkingService/pkg/locker"
)

// SlotRepository интерфейс реестра парковочных мест
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	SetStatus(ctx context.Context, location, slotID string, status domain.SlotStatus, bookedBy *string) error
}

// ReservationRepository интерфейс хранилища бронирований
type ReservationRepository interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
	TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Locker сериализует проходы реконсиляции
type Locker interface {
	Acquire(ctx context.Context, key string) (locker.Release, error)
}

// EventPublisher публикация доменных событий
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// MetricsRecorder учёт результатов прохода
type MetricsRecorder interface {
	RecordReconcile(scope string, duration time.Duration, expired, skipped, booked, released, conflicts int, err error)
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
