package models

import "github.com/m04kA/SMC-ParkingService/internal/domain"

// StatsResponse сводка для панели администратора
type StatsResponse struct {
	TotalBookings  int64   `json:"total_bookings"`
	ActiveBookings int64   `json:"active_bookings"`
	TotalRevenue   float64 `json:"total_revenue"`
	AvailableSlots int64   `json:"available_slots"`
}

// FromDomainStats конвертирует domain модель в DTO
func FromDomainStats(s *domain.BookingStats) *StatsResponse {
	return &StatsResponse{
		TotalBookings:  s.TotalBookings,
		ActiveBookings: s.ActiveBookings,
		TotalRevenue:   s.TotalRevenue,
		AvailableSlots: s.AvailableSlots,
	}
}
