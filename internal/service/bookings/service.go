package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/events"
	"github.com/m04kA/SMC-ParkingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	slotRepo        SlotRepository
	reconciler      Reconciler
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	slotRepo SlotRepository,
	reconciler Reconciler,
	publisher EventPublisher,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		reservationRepo: reservationRepo,
		slotRepo:        slotRepo,
		reconciler:      reconciler,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        loc,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID.
// Видеть бронирование может владелец или администратор
func (s *Service) GetByID(ctx context.Context, id int64, requester domain.Requester) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for requester=%d", id, requester.ID)

	if err := s.reconcile(ctx, "GetByID"); err != nil {
		return nil, err
	}

	reservation, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if !requester.CanAccess(reservation.OwnerID) {
		s.logger.Warn("GetByID: access denied for requester=%d to booking id=%d", requester.ID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainReservation(reservation), nil
}

// List возвращает бронирования после глобальной реконсиляции.
// Администратор видит все, клиент только свои. Опционально фильтрует по статусу
func (s *Service) List(ctx context.Context, requester domain.Requester, status *string) ([]models.BookingResponse, error) {
	s.logger.Info("List: fetching bookings for requester=%d, admin=%t, status=%v", requester.ID, requester.IsAdmin(), status)

	filter := domain.ReservationFilter{}
	if status != nil {
		st, err := models.ToDomainReservationStatus(*status)
		if err != nil {
			s.logger.Warn("List: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &st
	}
	if !requester.IsAdmin() {
		ownerID := requester.ID
		filter.OwnerID = &ownerID
	}

	if err := s.reconcile(ctx, "List"); err != nil {
		return nil, err
	}

	list, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error for requester=%d: %v", requester.ID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d bookings for requester=%d", len(list), requester.ID)
	return models.FromDomainReservationList(list), nil
}

// Update частично обновляет бронирование.
// Перевод active -> completed|cancelled освобождает место в той же транзакции
func (s *Service) Update(ctx context.Context, id int64, requester domain.Requester, req *models.UpdateBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Update: updating booking id=%d by requester=%d", id, requester.ID)

	if req == nil || req.IsEmpty() {
		s.logger.Warn("Update: empty update for booking id=%d", id)
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	var (
		updated  *domain.Reservation
		released bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		current, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Update: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		if !requester.CanAccess(current.OwnerID) {
			s.logger.Warn("Update: access denied for requester=%d to booking id=%d", requester.ID, id)
			return ErrAccessDenied
		}

		patch, err := buildPatch(current, req, s.location)
		if err != nil {
			s.logger.Warn("Update: invalid update for booking id=%d: %v", id, err)
			return err
		}

		next := *current
		patch.Apply(&next)

		if !patch.IsEmpty() {
			if err := s.reservationRepo.Update(txCtx, id, patch); err != nil {
				s.logger.Error("Update: repository error for booking id=%d: %v", id, err)
				return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
			}
		}

		switch {
		case current.IsActive() && !next.IsActive():
			// бронирование завершено, место возвращается в пул
			if err := s.setSlot(txCtx, &next, domain.SlotAvailable, nil); err != nil {
				return err
			}
			released = true
		case next.IsActive() && patch.CustomerName != nil:
			name := next.CustomerName
			if err := s.setSlot(txCtx, &next, domain.SlotBooked, &name); err != nil {
				return err
			}
		}

		updated = &next
		return nil
	})
	if err != nil {
		return nil, err
	}

	if released {
		s.publish(ctx, events.BookingReleased, updated)
	}

	s.logger.Info("Update: successfully updated booking id=%d, status=%s", id, updated.Status)
	return models.FromDomainReservation(updated), nil
}

// Delete удаляет бронирование. Доступно только администратору.
// Активное бронирование сначала освобождает место
func (s *Service) Delete(ctx context.Context, id int64, requester domain.Requester) error {
	s.logger.Info("Delete: deleting booking id=%d by requester=%d", id, requester.ID)

	if !requester.IsAdmin() {
		s.logger.Warn("Delete: requester=%d is not an admin", requester.ID)
		return ErrAccessDenied
	}

	var deleted *domain.Reservation

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		reservation, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("Delete: booking id=%d not found", id)
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		if reservation.IsActive() {
			if err := s.setSlot(txCtx, reservation, domain.SlotAvailable, nil); err != nil {
				return err
			}
		}

		if err := s.reservationRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrBookingNotFound
			}
			s.logger.Error("Delete: repository error for booking id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}

		deleted = reservation
		return nil
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.BookingDeleted, deleted)

	s.logger.Info("Delete: successfully deleted booking id=%d", id)
	return nil
}

// Вспомогательные методы

func (s *Service) reconcile(ctx context.Context, op string) error {
	if _, err := s.reconciler.Reconcile(ctx, nil); err != nil {
		s.logger.Error("%s: reconciliation failed: %v", op, err)
		return fmt.Errorf("%w: %s - reconcile: %v", ErrInternal, op, err)
	}
	return nil
}

// setSlot обновляет место бронирования. Отсутствующее место не считается ошибкой
func (s *Service) setSlot(ctx context.Context, r *domain.Reservation, status domain.SlotStatus, bookedBy *string) error {
	err := s.slotRepo.SetStatus(ctx, r.Location, r.SlotID, status, bookedBy)
	if err == nil {
		return nil
	}
	if errors.Is(err, slotRepo.ErrSlotNotFound) {
		s.logger.Warn("slot %s of booking id=%d not found", r.SlotKey(), r.ID)
		return nil
	}
	s.logger.Error("failed to set slot %s to %s for booking id=%d: %v", r.SlotKey(), status, r.ID, err)
	return fmt.Errorf("%w: set slot status: %v", ErrInternal, err)
}

func (s *Service) publish(ctx context.Context, t events.Type, r *domain.Reservation) {
	event := events.NewReservationEvent(t, r, s.timeProvider.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("failed to publish %s for booking id=%d: %v", t, r.ID, err)
	}
}
