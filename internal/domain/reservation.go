package domain

import "time"

// ReservationStatus represents the lifecycle status of a reservation
type ReservationStatus string

const (
	ReservationActive    ReservationStatus = "active"
	ReservationCompleted ReservationStatus = "completed"
	ReservationCancelled ReservationStatus = "cancelled"
)

// IsValid reports whether the status is a known reservation status
func (s ReservationStatus) IsValid() bool {
	return s == ReservationActive || s == ReservationCompleted || s == ReservationCancelled
}

// IsTerminal returns true for statuses a reservation never leaves
func (s ReservationStatus) IsTerminal() bool {
	return s == ReservationCompleted || s == ReservationCancelled
}

// Reservation represents a time-bounded claim on one slot by one account
type Reservation struct {
	ID            int64
	OwnerID       int64
	CustomerName  string
	VehicleNumber string

	// Denormalized slot reference at booking time
	Location string
	SlotID   string
	Floor    int

	// Raw values supplied by the caller, the window is recomputed from them
	Date          string // YYYY-MM-DD
	StartTime     string // HH:MM
	DurationHours int
	StartAt       time.Time
	EndAt         time.Time

	Amount    float64
	Status    ReservationStatus
	CreatedAt time.Time
}

// IsActive returns true if the reservation currently holds its slot
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationActive
}

// SlotKey returns the key of the referenced slot
func (r *Reservation) SlotKey() SlotKey {
	return SlotKey{Location: r.Location, SlotID: r.SlotID}
}

// Window recomputes the time window from the stored date, time and duration
func (r *Reservation) Window(loc *time.Location) (Window, error) {
	return NewWindow(r.Date, r.StartTime, r.DurationHours, loc)
}

// ReservationFilter фильтр списка бронирований, nil поля не ограничивают выборку
type ReservationFilter struct {
	OwnerID  *int64
	Status   *ReservationStatus
	Location *string
}

// ReservationPatch набор перезаписываемых полей, nil поля не меняются
type ReservationPatch struct {
	CustomerName  *string
	VehicleNumber *string
	Amount        *float64
	Date          *string
	StartTime     *string
	DurationHours *int
	StartAt       *time.Time
	EndAt         *time.Time
	Status        *ReservationStatus
}

// IsEmpty returns true if the patch changes nothing
func (p ReservationPatch) IsEmpty() bool {
	return p.CustomerName == nil &&
		p.VehicleNumber == nil &&
		p.Amount == nil &&
		p.Date == nil &&
		p.StartTime == nil &&
		p.DurationHours == nil &&
		p.StartAt == nil &&
		p.EndAt == nil &&
		p.Status == nil
}

// Apply overwrites the reservation fields set in the patch
func (p ReservationPatch) Apply(r *Reservation) {
	if p.CustomerName != nil {
		r.CustomerName = *p.CustomerName
	}
	if p.VehicleNumber != nil {
		r.VehicleNumber = *p.VehicleNumber
	}
	if p.Amount != nil {
		r.Amount = *p.Amount
	}
	if p.Date != nil {
		r.Date = *p.Date
	}
	if p.StartTime != nil {
		r.StartTime = *p.StartTime
	}
	if p.DurationHours != nil {
		r.DurationHours = *p.DurationHours
	}
	if p.StartAt != nil {
		r.StartAt = *p.StartAt
	}
	if p.EndAt != nil {
		r.EndAt = *p.EndAt
	}
	if p.Status != nil {
		r.Status = *p.Status
	}
}

// BookingStats aggregated figures for the admin dashboard
type BookingStats struct {
	TotalBookings  int64
	ActiveBookings int64
	TotalRevenue   float64
	AvailableSlots int64
}
