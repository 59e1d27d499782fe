package stats

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	bookingModels "github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-ParkingService/internal/service/stats/models"
)

// Service отчёты для администратора
type Service struct {
	statsRepo       StatsRepository
	reservationRepo ReservationRepository
	reconciler      Reconciler
	logger          Logger
}

// NewService создает новый экземпляр сервиса отчётов
func NewService(
	statsRepo StatsRepository,
	reservationRepo ReservationRepository,
	reconciler Reconciler,
	logger Logger,
) *Service {
	return &Service{
		statsRepo:       statsRepo,
		reservationRepo: reservationRepo,
		reconciler:      reconciler,
		logger:          logger,
	}
}

// Stats возвращает агрегаты после глобальной реконсиляции
func (s *Service) Stats(ctx context.Context, requester domain.Requester) (*models.StatsResponse, error) {
	s.logger.Info("Stats: requested by requester=%d", requester.ID)

	if !requester.IsAdmin() {
		s.logger.Warn("Stats: requester=%d is not an admin", requester.ID)
		return nil, ErrAccessDenied
	}

	if _, err := s.reconciler.Reconcile(ctx, nil); err != nil {
		s.logger.Error("Stats: reconciliation failed: %v", err)
		return nil, fmt.Errorf("%w: Stats - reconcile: %v", ErrInternal, err)
	}

	stats, err := s.statsRepo.BookingStats(ctx)
	if err != nil {
		s.logger.Error("Stats: repository error: %v", err)
		return nil, fmt.Errorf("%w: Stats - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainStats(stats), nil
}

// Export возвращает все бронирования без фильтрации
func (s *Service) Export(ctx context.Context, requester domain.Requester) ([]bookingModels.BookingResponse, error) {
	s.logger.Info("Export: requested by requester=%d", requester.ID)

	if !requester.IsAdmin() {
		s.logger.Warn("Export: requester=%d is not an admin", requester.ID)
		return nil, ErrAccessDenied
	}

	list, err := s.reservationRepo.List(ctx, domain.ReservationFilter{})
	if err != nil {
		s.logger.Error("Export: repository error: %v", err)
		return nil, fmt.Errorf("%w: Export - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Export: exported %d bookings", len(list))
	return bookingModels.FromDomainReservationList(list), nil
}
