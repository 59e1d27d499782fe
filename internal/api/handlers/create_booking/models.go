package create_booking

import (
	"time"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	createBooking "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerName  string  `json:"name"`
	VehicleNumber string  `json:"vehicle"`
	SlotID        string  `json:"slot"`     // "F1-A2"
	Location      string  `json:"location"` // может быть пустой
	Date          string  `json:"date"`     // "2024-01-01"
	StartTime     string  `json:"time"`     // "10:00"
	DurationHours int     `json:"duration"` // часы
	Amount        float64 `json:"amount"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	VehicleNumber string    `json:"vehicle_number"`
	Slot          string    `json:"slot"`
	Location      string    `json:"location"`
	Floor         int       `json:"floor"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Duration      int       `json:"duration"`
	Amount        float64   `json:"amount"`
	Status        string    `json:"status"`
	StartAt       string    `json:"start_at"`
	EndAt         string    `json:"end_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(ownerID int64) *createBooking.Request {
	return &createBooking.Request{
		OwnerID:       ownerID,
		SlotID:        r.SlotID,
		Location:      r.Location,
		CustomerName:  r.CustomerName,
		VehicleNumber: r.VehicleNumber,
		Date:          r.Date,
		StartTime:     r.StartTime,
		DurationHours: r.DurationHours,
		Amount:        r.Amount,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:            resp.ID,
		UserID:        resp.OwnerID,
		CustomerName:  resp.CustomerName,
		VehicleNumber: resp.VehicleNumber,
		Slot:          resp.SlotID,
		Location:      resp.Location,
		Floor:         resp.Floor,
		Date:          resp.Date,
		Time:          resp.StartTime,
		Duration:      resp.DurationHours,
		Amount:        resp.Amount,
		Status:        resp.Status,
		StartAt:       resp.StartAt.Format(domain.DateTimeFormat),
		EndAt:         resp.EndAt.Format(domain.DateTimeFormat),
		CreatedAt:     resp.CreatedAt,
	}
}
