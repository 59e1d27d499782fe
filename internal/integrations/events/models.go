package events

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Type тип доменного события
type Type string

const (
	BookingCreated   Type = "booking.created"
	BookingReleased  Type = "booking.released"
	BookingExpired   Type = "booking.expired"
	BookingDeleted   Type = "booking.deleted"
	ReconcileSkipped Type = "reconcile.skipped"
)

// Event сообщение, публикуемое в очередь в формате JSON
type Event struct {
	Type          Type      `json:"type"`
	ReservationID int64     `json:"reservation_id"`
	OwnerID       int64     `json:"owner_id,omitempty"`
	Location      string    `json:"location,omitempty"`
	SlotID        string    `json:"slot_id,omitempty"`
	Status        string    `json:"status,omitempty"`
	Reason        string    `json:"reason,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

// NewReservationEvent собирает событие по бронированию
func NewReservationEvent(t Type, r *domain.Reservation, now time.Time) Event {
	return Event{
		Type:          t,
		ReservationID: r.ID,
		OwnerID:       r.OwnerID,
		Location:      r.Location,
		SlotID:        r.SlotID,
		Status:        string(r.Status),
		OccurredAt:    now.UTC(),
	}
}
