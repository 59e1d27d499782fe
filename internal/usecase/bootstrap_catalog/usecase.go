package bootstrap_catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// UseCase подготовка каталога мест при старте сервиса.
// Повторный запуск ничего не меняет
type UseCase struct {
	slotRepo   SlotRepository
	reconciler Reconciler
	logger     Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(slotRepo SlotRepository, reconciler Reconciler, logger Logger) *UseCase {
	return &UseCase{
		slotRepo:   slotRepo,
		reconciler: reconciler,
		logger:     logger,
	}
}

// Execute нормализует legacy идентификаторы, досоздаёт недостающие места
// и выполняет глобальную реконсиляцию
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("BootstrapCatalog: locations=%v floors=%v rows=%v numbers=%v",
		req.Locations, req.Floors, req.Rows, req.Numbers)

	// 1. Валидация каталога
	if err := validateRequest(req); err != nil {
		uc.logger.Error("BootstrapCatalog: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{}

	// 2. Нормализуем идентификаторы без префикса этажа
	if err := uc.normalizeLegacy(ctx, resp); err != nil {
		return nil, err
	}

	// 3. Досоздаём места каталога
	for _, loc := range req.Locations {
		for _, floor := range req.Floors {
			for _, row := range req.Rows {
				for _, number := range req.Numbers {
					slot := &domain.Slot{
						SlotID:   domain.FormatSlotID(floor, row, number),
						Location: loc,
						Floor:    floor,
						Status:   domain.SlotAvailable,
					}
					created, err := uc.slotRepo.EnsureExists(ctx, slot)
					if err != nil {
						uc.logger.Error("BootstrapCatalog: failed to ensure slot %s: %v", slot.Key(), err)
						return nil, fmt.Errorf("%w: ensure slot %s: %v", ErrInternal, slot.Key(), err)
					}
					if created {
						resp.Created++
					}
				}
			}
		}
	}

	// 4. Приводим статусы в соответствие с активными бронированиями
	report, err := uc.reconciler.Reconcile(ctx, nil)
	if err != nil {
		uc.logger.Error("BootstrapCatalog: reconciliation failed: %v", err)
		return nil, fmt.Errorf("%w: reconcile: %v", ErrInternal, err)
	}
	resp.Report = report

	uc.logger.Info("BootstrapCatalog: renamed=%d skipped=%d created=%d",
		resp.Renamed, len(resp.RenameSkipped), resp.Created)

	return resp, nil
}

func (uc *UseCase) normalizeLegacy(ctx context.Context, resp *Response) error {
	slots, err := uc.slotRepo.List(ctx, domain.SlotFilter{})
	if err != nil {
		uc.logger.Error("BootstrapCatalog: failed to list slots: %v", err)
		return fmt.Errorf("%w: list slots: %v", ErrInternal, err)
	}

	taken := make(map[domain.SlotKey]struct{}, len(slots))
	for _, slot := range slots {
		taken[slot.Key()] = struct{}{}
	}

	for _, slot := range slots {
		if domain.HasFloorPrefix(slot.SlotID) {
			continue
		}

		floor := slot.Floor
		if floor <= 0 {
			floor = domain.LegacyDefaultFloor
		}
		target := domain.SlotKey{Location: slot.Location, SlotID: domain.NormalizeSlotID(slot.SlotID, floor)}

		if _, exists := taken[target]; exists {
			uc.logger.Warn("BootstrapCatalog: cannot rename %s to %s, target already exists", slot.Key(), target.SlotID)
			resp.RenameSkipped = append(resp.RenameSkipped, slot.Key().String())
			continue
		}

		if err := uc.slotRepo.Rename(ctx, slot.ID, target.SlotID); err != nil {
			uc.logger.Warn("BootstrapCatalog: failed to rename %s to %s: %v", slot.Key(), target.SlotID, err)
			resp.RenameSkipped = append(resp.RenameSkipped, slot.Key().String())
			continue
		}

		delete(taken, slot.Key())
		taken[target] = struct{}{}
		resp.Renamed++
	}

	return nil
}
