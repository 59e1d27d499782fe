package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// UpdateBookingRequest частичное обновление бронирования, nil поля не меняются
type UpdateBookingRequest struct {
	CustomerName  *string  `json:"name,omitempty"`
	VehicleNumber *string  `json:"vehicle,omitempty"`
	Amount        *float64 `json:"amount,omitempty"`
	Date          *string  `json:"date,omitempty"`
	StartTime     *string  `json:"time,omitempty"`
	DurationHours *int     `json:"duration,omitempty"`
	Status        *string  `json:"status,omitempty"`
}

// IsEmpty возвращает true, если запрос ничего не меняет
func (r *UpdateBookingRequest) IsEmpty() bool {
	return r.CustomerName == nil &&
		r.VehicleNumber == nil &&
		r.Amount == nil &&
		r.Date == nil &&
		r.StartTime == nil &&
		r.DurationHours == nil &&
		r.Status == nil
}

// ChangesWindow возвращает true, если меняется дата, время или длительность
func (r *UpdateBookingRequest) ChangesWindow() bool {
	return r.Date != nil || r.StartTime != nil || r.DurationHours != nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	VehicleNumber string    `json:"vehicle_number"`
	Slot          string    `json:"slot"`
	Location      string    `json:"location"`
	Floor         int       `json:"floor"`
	Date          string    `json:"date"`     // "2024-01-01"
	Time          string    `json:"time"`     // "10:00"
	Duration      int       `json:"duration"` // часы
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	StartAt       string    `json:"start_at,omitempty"` // "2024-01-01 10:00"
	EndAt         string    `json:"end_at,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Методы конвертации

// FromDomainReservation конвертирует domain модель в DTO
func FromDomainReservation(r *domain.Reservation) *BookingResponse {
	if r == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:            r.ID,
		UserID:        r.OwnerID,
		CustomerName:  r.CustomerName,
		VehicleNumber: r.VehicleNumber,
		Slot:          r.SlotID,
		Location:      r.Location,
		Floor:         r.Floor,
		Date:          r.Date,
		Time:          r.StartTime,
		Duration:      r.DurationHours,
		Amount:        r.Amount,
		Status:        string(r.Status),
		CreatedAt:     r.CreatedAt,
	}

	// Битые записи хранятся без вычисленного окна
	if !r.StartAt.IsZero() {
		resp.StartAt = r.StartAt.Format(domain.DateTimeFormat)
	}
	if !r.EndAt.IsZero() {
		resp.EndAt = r.EndAt.Format(domain.DateTimeFormat)
	}

	return resp
}

// FromDomainReservationList конвертирует список domain моделей в DTO
func FromDomainReservationList(list []*domain.Reservation) []BookingResponse {
	resp := make([]BookingResponse, 0, len(list))
	for _, r := range list {
		if item := FromDomainReservation(r); item != nil {
			resp = append(resp, *item)
		}
	}
	return resp
}

// ToDomainReservationStatus конвертирует строку в domain.ReservationStatus с валидацией
func ToDomainReservationStatus(status string) (domain.ReservationStatus, error) {
	s := domain.ReservationStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
