package domain

import (
	"fmt"
	"strings"
	"time"
)

// SlotStatus represents the availability of a parking slot
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// IsValid reports whether the status is a known slot status
func (s SlotStatus) IsValid() bool {
	return s == SlotAvailable || s == SlotBooked
}

// Slot represents a physical parking space at a location
type Slot struct {
	ID        int64
	SlotID    string // F<floor>-<row><number>, unique within a location
	Location  string
	Floor     int
	Status    SlotStatus
	BookedBy  *string // customer display name, set iff Status == SlotBooked
	CreatedAt time.Time
}

// IsAvailable returns true if the slot can be booked
func (s *Slot) IsAvailable() bool {
	return s.Status == SlotAvailable
}

// Key returns the natural key of the slot
func (s *Slot) Key() SlotKey {
	return SlotKey{Location: s.Location, SlotID: s.SlotID}
}

// SlotKey identifies a slot across locations
type SlotKey struct {
	Location string
	SlotID   string
}

func (k SlotKey) String() string {
	return k.Location + "/" + k.SlotID
}

// SlotFilter фильтр списка слотов, nil поля не ограничивают выборку
type SlotFilter struct {
	Location *string
	Floor    *int
	Status   *SlotStatus
	SlotID   *string
}

// FormatSlotID builds a slot id like F1-A2
func FormatSlotID(floor int, row string, number int) string {
	return fmt.Sprintf("%s%d%s%s%d", SlotIDFloorPrefix, floor, SlotIDFloorSplitter, row, number)
}

// HasFloorPrefix reports whether the slot id already carries the F<floor>- prefix
func HasFloorPrefix(slotID string) bool {
	if !strings.HasPrefix(slotID, SlotIDFloorPrefix) {
		return false
	}
	rest := slotID[len(SlotIDFloorPrefix):]
	idx := strings.Index(rest, SlotIDFloorSplitter)
	if idx <= 0 {
		return false
	}
	for _, r := range rest[:idx] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeSlotID prefixes a legacy slot id (e.g. A2) with its floor
func NormalizeSlotID(slotID string, floor int) string {
	if HasFloorPrefix(slotID) {
		return slotID
	}
	return fmt.Sprintf("%s%d%s%s", SlotIDFloorPrefix, floor, SlotIDFloorSplitter, slotID)
}
