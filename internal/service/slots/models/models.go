package models

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// ListSlotsRequest фильтры списка мест, nil поля не ограничивают выборку
type ListSlotsRequest struct {
	Location *string
	Floor    *int
	Status   *string
}

// SlotResponse ответ с данными места
type SlotResponse struct {
	ID        int64     `json:"id"`
	SlotID    string    `json:"slot_id"`
	Location  string    `json:"location"`
	Floor     int       `json:"floor"`
	Status    string    `json:"status"`
	BookedBy  *string   `json:"booked_by"`
	CreatedAt time.Time `json:"created_at"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	if s == nil {
		return nil
	}
	return &SlotResponse{
		ID:        s.ID,
		SlotID:    s.SlotID,
		Location:  s.Location,
		Floor:     s.Floor,
		Status:    string(s.Status),
		BookedBy:  s.BookedBy,
		CreatedAt: s.CreatedAt,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(list []*domain.Slot) []SlotResponse {
	resp := make([]SlotResponse, 0, len(list))
	for _, s := range list {
		if item := FromDomainSlot(s); item != nil {
			resp = append(resp, *item)
		}
	}
	return resp
}
