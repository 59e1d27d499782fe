package slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/service/slots/models"
)

// Service сервис чтения парковочных мест.
// Перед каждым чтением выполняется реконсиляция в пределах локации запроса
type Service struct {
	slotRepo   SlotRepository
	reconciler Reconciler
	logger     Logger
}

// NewService создает новый экземпляр сервиса мест
func NewService(slotRepo SlotRepository, reconciler Reconciler, logger Logger) *Service {
	return &Service{
		slotRepo:   slotRepo,
		reconciler: reconciler,
		logger:     logger,
	}
}

// List возвращает места, подходящие под фильтры
func (s *Service) List(ctx context.Context, req *models.ListSlotsRequest) ([]models.SlotResponse, error) {
	s.logger.Info("List: fetching slots location=%v floor=%v status=%v", req.Location, req.Floor, req.Status)

	filter := domain.SlotFilter{
		Location: req.Location,
		Floor:    req.Floor,
	}
	if req.Status != nil {
		status := domain.SlotStatus(*req.Status)
		if !status.IsValid() {
			s.logger.Warn("List: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if err := s.reconcile(ctx, "List", req.Location); err != nil {
		return nil, err
	}

	list, err := s.slotRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d slots", len(list))
	return models.FromDomainSlotList(list), nil
}

// Get возвращает одно место
func (s *Service) Get(ctx context.Context, location, slotID string) (*models.SlotResponse, error) {
	s.logger.Info("Get: fetching slot %s/%s", location, slotID)

	if err := s.reconcile(ctx, "Get", &location); err != nil {
		return nil, err
	}

	slot, err := s.slotRepo.Get(ctx, location, slotID)
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			s.logger.Warn("Get: slot %s/%s not found", location, slotID)
			return nil, ErrSlotNotFound
		}
		s.logger.Error("Get: repository error for slot %s/%s: %v", location, slotID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSlot(slot), nil
}

func (s *Service) reconcile(ctx context.Context, op string, location *string) error {
	if _, err := s.reconciler.Reconcile(ctx, location); err != nil {
		s.logger.Error("%s: reconciliation failed: %v", op, err)
		return fmt.Errorf("%w: %s - reconcile: %v", ErrInternal, op, err)
	}
	return nil
}
