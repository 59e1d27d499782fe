package memory

import (
	"context"
	"sort"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
)

// SlotRepository реализация реестра мест поверх Store
type SlotRepository struct {
	store *Store
}

// NewSlotRepository создает репозиторий мест
func NewSlotRepository(store *Store) *SlotRepository {
	return &SlotRepository{store: store}
}

func (r *SlotRepository) List(ctx context.Context, filter domain.SlotFilter) ([]*domain.Slot, error) {
	s := r.store
	defer s.lock(ctx)()

	slots := make([]*domain.Slot, 0)
	for _, slot := range s.slots {
		if filter.Location != nil && slot.Location != *filter.Location {
			continue
		}
		if filter.Floor != nil && slot.Floor != *filter.Floor {
			continue
		}
		if filter.Status != nil && slot.Status != *filter.Status {
			continue
		}
		if filter.SlotID != nil && slot.SlotID != *filter.SlotID {
			continue
		}
		slots = append(slots, copySlot(slot))
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Location != slots[j].Location {
			return slots[i].Location < slots[j].Location
		}
		return slots[i].SlotID < slots[j].SlotID
	})

	return slots, nil
}

func (r *SlotRepository) Get(ctx context.Context, location, slotID string) (*domain.Slot, error) {
	s := r.store
	defer s.lock(ctx)()

	id, ok := s.findSlot(location, slotID)
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return copySlot(s.slots[id]), nil
}

func (r *SlotRepository) SetStatus(ctx context.Context, location, slotID string, status domain.SlotStatus, bookedBy *string) error {
	s := r.store
	defer s.lock(ctx)()

	id, ok := s.findSlot(location, slotID)
	if !ok {
		return slotRepo.ErrSlotNotFound
	}

	slot := s.slots[id]
	slot.Status = status
	slot.BookedBy = cloneString(bookedBy)
	s.slots[id] = slot
	return nil
}

func (r *SlotRepository) EnsureExists(ctx context.Context, slot *domain.Slot) (bool, error) {
	s := r.store
	defer s.lock(ctx)()

	if _, ok := s.findSlot(slot.Location, slot.SlotID); ok {
		return false, nil
	}

	s.nextSlotID++
	stored := *slot
	stored.ID = s.nextSlotID
	stored.BookedBy = cloneString(slot.BookedBy)
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	s.slots[stored.ID] = stored
	return true, nil
}

func (r *SlotRepository) Rename(ctx context.Context, id int64, newSlotID string) error {
	s := r.store
	defer s.lock(ctx)()

	slot, ok := s.slots[id]
	if !ok {
		return slotRepo.ErrSlotNotFound
	}
	if other, exists := s.findSlot(slot.Location, newSlotID); exists && other != id {
		return slotRepo.ErrExecQuery
	}

	slot.SlotID = newSlotID
	s.slots[id] = slot
	return nil
}

func (s *Store) findSlot(location, slotID string) (int64, bool) {
	for id, slot := range s.slots {
		if slot.Location == location && slot.SlotID == slotID {
			return id, true
		}
	}
	return 0, false
}

func copySlot(slot domain.Slot) *domain.Slot {
	slot.BookedBy = cloneString(slot.BookedBy)
	return &slot
}
