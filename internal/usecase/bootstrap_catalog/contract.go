package bootstrap_catalog

import (
	"context"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reconcilerModels "github.com/m04kA/SMC-ParkingService/internal/service/reconciler/models"
)

// SlotRepository интерфейс реестра парковочных мест
type SlotRepository interface {
	List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error)
	EnsureExists(ctx context.Context, slot *domain.Slot) (bool, error)
	Rename(ctx context.Context, id int64, newSlotID string) error
}

// Reconciler проход реконсиляции
type Reconciler interface {
	Reconcile(ctx context.Context, location *string) (*reconcilerModels.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
