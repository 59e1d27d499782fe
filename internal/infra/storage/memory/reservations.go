package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/reservation"
)

// ReservationRepository реализация хранилища бронирований поверх Store
type ReservationRepository struct {
	store *Store
}

// NewReservationRepository создает репозиторий бронирований
func NewReservationRepository(store *Store) *ReservationRepository {
	return &ReservationRepository{store: store}
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	s := r.store
	defer s.lock(ctx)()

	s.nextReservationID++
	res.ID = s.nextReservationID
	if res.CreatedAt.IsZero() {
		res.CreatedAt = s.now()
	}
	s.reservations[res.ID] = *res

	return res, nil
}

func (r *ReservationRepository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	s := r.store
	defer s.lock(ctx)()

	res, ok := s.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	return &res, nil
}

func (r *ReservationRepository) List(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	s := r.store
	defer s.lock(ctx)()

	list := make([]*domain.Reservation, 0)
	for _, res := range s.reservations {
		if filter.OwnerID != nil && res.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.Location != nil && res.Location != *filter.Location {
			continue
		}
		res := res
		list = append(list, &res)
	}

	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (r *ReservationRepository) Update(ctx context.Context, id int64, patch domain.ReservationPatch) error {
	if patch.IsEmpty() {
		return reservationRepo.ErrEmptyPatch
	}

	s := r.store
	defer s.lock(ctx)()

	res, ok := s.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	patch.Apply(&res)
	s.reservations[id] = res
	return nil
}

func (r *ReservationRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.ReservationStatus) (bool, error) {
	s := r.store
	defer s.lock(ctx)()

	res, ok := s.reservations[id]
	if !ok || res.Status != from {
		return false, nil
	}
	res.Status = to
	s.reservations[id] = res
	return true, nil
}

func (r *ReservationRepository) Delete(ctx context.Context, id int64) error {
	s := r.store
	defer s.lock(ctx)()

	if _, ok := s.reservations[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(s.reservations, id)
	return nil
}
