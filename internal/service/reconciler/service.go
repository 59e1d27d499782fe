package reconciler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	"github.com/m04kA/SMC-ParkingService/internal/integrations/events"
	"github.com/m04kA/SMC-ParkingService/internal/service/reconciler/models"
)

const lockKey = "reconcile"

// Service приводит статусы мест в соответствие с активными бронированиями
// и завершает бронирования, чьё время истекло
type Service struct {
	slotRepo        SlotRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	locker          Locker
	publisher       EventPublisher
	metrics         MetricsRecorder
	timeProvider    TimeProvider
	location        *time.Location
	lockTimeout     time.Duration
	logger          Logger
}

// NewService создает новый экземпляр сервиса реконсиляции.
// loc - часовой пояс, в котором интерпретируются дата и время бронирований
func NewService(
	slotRepo SlotRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	locker Locker,
	publisher EventPublisher,
	metrics MetricsRecorder,
	loc *time.Location,
	lockTimeout time.Duration,
	logger Logger,
) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		slotRepo:        slotRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		locker:          locker,
		publisher:       publisher,
		metrics:         metrics,
		timeProvider:    &RealTimeProvider{},
		location:        loc,
		lockTimeout:     lockTimeout,
		logger:          logger,
	}
}

// Reconcile выполняет один проход: истечение по всем активным бронированиям,
// затем пересинхронизацию мест в пределах location (nil - все локации).
// Ошибки отдельных записей попадают в отчёт и не прерывают проход
func (s *Service) Reconcile(ctx context.Context, location *string) (*models.Report, error) {
	scope := models.ScopeAll
	if location != nil {
		scope = *location
	}

	release, err := s.acquire(ctx)
	if err != nil {
		s.logger.Error("Reconcile: scope=%s failed to acquire lock: %v", scope, err)
		return nil, err
	}
	defer func() {
		if err := release(); err != nil {
			s.logger.Warn("Reconcile: scope=%s failed to release lock: %v", scope, err)
		}
	}()

	startedAt := time.Now()
	report := &models.Report{
		Scope:     scope,
		StartedAt: s.timeProvider.Now(),
	}

	err = s.expire(ctx, report)
	if err == nil {
		err = s.resync(ctx, location, report)
	}
	report.Duration = time.Since(startedAt)

	s.metrics.RecordReconcile(scope, report.Duration,
		len(report.Expired), len(report.Skipped), report.Booked, report.Released, len(report.Conflicts), err)

	if err != nil {
		s.logger.Error("Reconcile: scope=%s failed: %v", scope, err)
		return nil, err
	}

	s.logger.Info("Reconcile: scope=%s expired=%d skipped=%d failed=%d booked=%d released=%d conflicts=%d duration=%s",
		scope, len(report.Expired), len(report.Skipped), len(report.Failed),
		report.Booked, report.Released, len(report.Conflicts), report.Duration)

	return report, nil
}

func (s *Service) acquire(ctx context.Context) (func() error, error) {
	lockCtx := ctx
	if s.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, s.lockTimeout)
		defer cancel()
	}

	release, err := s.locker.Acquire(lockCtx, lockKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLockTimeout, err)
	}
	return release, nil
}

// expire завершает все активные бронирования, чьё окно закончилось к текущему моменту.
// Время пересчитывается из исходных даты, времени и длительности
func (s *Service) expire(ctx context.Context, report *models.Report) error {
	active := domain.ReservationActive
	reservations, err := s.reservationRepo.List(ctx, domain.ReservationFilter{Status: &active})
	if err != nil {
		return fmt.Errorf("%w: expire - list active reservations: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now()

	for _, res := range reservations {
		window, err := res.Window(s.location)
		if err != nil {
			// одна битая запись не должна останавливать проход
			s.logger.Warn("Reconcile: skipping reservation id=%d date=%q time=%q duration=%d: %v",
				res.ID, res.Date, res.StartTime, res.DurationHours, err)
			report.Skipped = append(report.Skipped, models.SkippedReservation{
				ReservationID: res.ID,
				Reason:        err.Error(),
			})

			event := events.NewReservationEvent(events.ReconcileSkipped, res, now)
			event.Reason = err.Error()
			s.publish(ctx, event)
			continue
		}

		if !window.Elapsed(now) {
			continue
		}

		expired, slotMissing, err := s.expireOne(ctx, res)
		if err != nil {
			s.logger.Error("Reconcile: failed to expire reservation id=%d: %v", res.ID, err)
			report.Failed = append(report.Failed, models.FailedReservation{
				ReservationID: res.ID,
				Error:         err.Error(),
			})
			continue
		}

		if slotMissing {
			s.logger.Warn("Reconcile: slot %s of reservation id=%d not found", res.SlotKey(), res.ID)
			report.MissingSlots = append(report.MissingSlots, res.SlotKey().String())
		}

		if !expired {
			// уже завершено другим вызовом
			continue
		}

		report.Expired = append(report.Expired, res.ID)
		res.Status = domain.ReservationCompleted
		s.publish(ctx, events.NewReservationEvent(events.BookingExpired, res, now))
	}

	return nil
}

// expireOne в одной транзакции переводит бронирование active->completed и освобождает место
func (s *Service) expireOne(ctx context.Context, res *domain.Reservation) (expired bool, slotMissing bool, err error) {
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		ok, err := s.reservationRepo.TransitionStatus(txCtx, res.ID, domain.ReservationActive, domain.ReservationCompleted)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		expired = true

		err = s.slotRepo.SetStatus(txCtx, res.Location, res.SlotID, domain.SlotAvailable, nil)
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			slotMissing = true
			return nil
		}
		return err
	})
	if err != nil {
		return false, false, err
	}
	return expired, slotMissing, nil
}

// resync безусловно перезаписывает статус каждого места в пределах location
func (s *Service) resync(ctx context.Context, location *string, report *models.Report) error {
	var (
		booked    int
		released  int
		conflicts []models.Conflict
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		booked, released, conflicts = 0, 0, nil

		slots, err := s.slotRepo.List(txCtx, domain.SlotFilter{Location: location})
		if err != nil {
			return fmt.Errorf("list slots: %v", err)
		}

		active := domain.ReservationActive
		reservations, err := s.reservationRepo.List(txCtx, domain.ReservationFilter{
			Status:   &active,
			Location: location,
		})
		if err != nil {
			return fmt.Errorf("list active reservations: %v", err)
		}

		// бронирования идут в порядке создания, первое определяет booked_by
		holders := make(map[domain.SlotKey][]*domain.Reservation, len(reservations))
		for _, res := range reservations {
			holders[res.SlotKey()] = append(holders[res.SlotKey()], res)
		}

		for _, slot := range slots {
			key := slot.Key()
			list, ok := holders[key]
			if !ok {
				if err := s.slotRepo.SetStatus(txCtx, key.Location, key.SlotID, domain.SlotAvailable, nil); err != nil {
					return fmt.Errorf("release slot %s: %v", key, err)
				}
				released++
				continue
			}

			if len(list) > 1 {
				conflict := models.Conflict{Location: key.Location, SlotID: key.SlotID}
				for _, res := range list {
					conflict.ReservationIDs = append(conflict.ReservationIDs, res.ID)
				}
				s.logger.Warn("Reconcile: slot %s is held by %d active reservations %v, keeping id=%d",
					key, len(list), conflict.ReservationIDs, list[0].ID)
				conflicts = append(conflicts, conflict)
			}

			name := list[0].CustomerName
			if err := s.slotRepo.SetStatus(txCtx, key.Location, key.SlotID, domain.SlotBooked, &name); err != nil {
				return fmt.Errorf("book slot %s: %v", key, err)
			}
			booked++
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: resync - %v", ErrInternal, err)
	}

	report.Booked = booked
	report.Released = released
	report.Conflicts = conflicts
	return nil
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Reconcile: failed to publish %s for reservation id=%d: %v", event.Type, event.ReservationID, err)
	}
}
