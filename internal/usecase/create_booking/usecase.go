package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/events"
)

// UseCase use case для создания бронирования
type UseCase struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	publisher       EventPublisher
	txManager       TransactionManager
	timeProvider    TimeProvider
	location        *time.Location
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	publisher EventPublisher,
	txManager TransactionManager,
	loc *time.Location,
	logger Logger,
) *UseCase {
	if loc == nil {
		loc = time.Local
	}
	return &UseCase{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		publisher:       publisher,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		location:        loc,
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка места, вставка бронирования и пометка места занятым выполняются
// в одной транзакции с блокировкой строки места. Гонку двух вставок на одно
// место закрывает уникальный индекс активных бронирований
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: owner=%d, location=%q, slot=%s, date=%s, time=%s, duration=%d",
		req.OwnerID, req.Location, req.SlotID, req.Date, req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Вычисляем окно бронирования
	window, err := domain.NewWindow(req.Date, req.StartTime, req.DurationHours, uc.location)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid window date=%q time=%q: %v", req.Date, req.StartTime, err)
		if errors.Is(err, domain.ErrInvalidDuration) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeFormat, err)
	}

	var result *domain.Reservation

	// 3. Блокируем место, создаём бронирование и занимаем место атомарно
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		slot, err := uc.resolveSlot(txCtx, req.Location, req.SlotID)
		if err != nil {
			return err
		}

		if !slot.IsAvailable() {
			uc.logger.Warn("CreateBooking: slot %s is already booked", slot.Key())
			return ErrSlotUnavailable
		}

		reservation := &domain.Reservation{
			OwnerID:       req.OwnerID,
			CustomerName:  req.CustomerName,
			VehicleNumber: req.VehicleNumber,
			// Денормализация данных места
			Location:      slot.Location,
			SlotID:        slot.SlotID,
			Floor:         slot.Floor,
			Date:          window.StartAt.Format(domain.DateFormat),
			StartTime:     window.StartAt.Format(domain.TimeFormat),
			DurationHours: req.DurationHours,
			StartAt:       window.StartAt,
			EndAt:         window.EndAt,
			Amount:        req.Amount,
			Status:        domain.ReservationActive,
			CreatedAt:     uc.timeProvider.Now(),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrActiveReservationExists) {
				uc.logger.Warn("CreateBooking: slot %s was booked concurrently", slot.Key())
				return ErrSlotUnavailable
			}
			uc.logger.Error("CreateBooking: failed to create reservation for slot %s: %v", slot.Key(), err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		name := req.CustomerName
		if err := uc.slotRepo.SetStatus(txCtx, slot.Location, slot.SlotID, domain.SlotBooked, &name); err != nil {
			uc.logger.Error("CreateBooking: failed to book slot %s: %v", slot.Key(), err)
			return fmt.Errorf("%w: failed to book slot: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created reservation id=%d for slot %s", result.ID, result.SlotKey())

	// 4. Событие публикуется после фиксации транзакции
	event := events.NewReservationEvent(events.BookingCreated, result, uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateBooking: failed to publish event for reservation id=%d: %v", result.ID, err)
	}

	return toResponse(result), nil
}

// resolveSlot находит место по локации и идентификатору.
// Без локации место ищется по идентификатору среди всех локаций
func (uc *UseCase) resolveSlot(ctx context.Context, location, slotID string) (*domain.Slot, error) {
	if location != "" {
		slot, err := uc.slotRepo.Get(ctx, location, slotID)
		if err != nil {
			if errors.Is(err, slotRepo.ErrSlotNotFound) {
				uc.logger.Warn("CreateBooking: slot %s/%s not found", location, slotID)
				return nil, ErrSlotNotFound
			}
			uc.logger.Error("CreateBooking: failed to get slot %s/%s: %v", location, slotID, err)
			return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
		return slot, nil
	}

	slots, err := uc.slotRepo.List(ctx, domain.SlotFilter{SlotID: &slotID})
	if err != nil {
		uc.logger.Error("CreateBooking: failed to find slot %s: %v", slotID, err)
		return nil, fmt.Errorf("%w: failed to find slot: %v", ErrInternal, err)
	}

	switch len(slots) {
	case 0:
		uc.logger.Warn("CreateBooking: slot %s not found in any location", slotID)
		return nil, ErrSlotNotFound
	case 1:
		return slots[0], nil
	default:
		uc.logger.Warn("CreateBooking: slot %s exists in %d locations, location is required", slotID, len(slots))
		return nil, fmt.Errorf("%w: slot %s exists in several locations, location is required", ErrInvalidInput, slotID)
	}
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:            r.ID,
		OwnerID:       r.OwnerID,
		CustomerName:  r.CustomerName,
		VehicleNumber: r.VehicleNumber,
		Location:      r.Location,
		SlotID:        r.SlotID,
		Floor:         r.Floor,
		Date:          r.Date,
		StartTime:     r.StartTime,
		DurationHours: r.DurationHours,
		StartAt:       r.StartAt,
		EndAt:         r.EndAt,
		Amount:        r.Amount,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}
}
