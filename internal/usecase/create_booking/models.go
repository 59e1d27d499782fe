package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	OwnerID       int64   // ID аккаунта из токена
	SlotID        string  // Идентификатор места, например F1-A2
	Location      string  // Локация; пустая - место ищется по SlotID во всех локациях
	CustomerName  string  // Имя клиента, попадает в booked_by
	VehicleNumber string  // Госномер
	Date          string  // YYYY-MM-DD
	StartTime     string  // HH:MM
	DurationHours int     // Длительность в часах
	Amount        float64 // Сумма, сервисом не проверяется
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64
	OwnerID       int64
	CustomerName  string
	VehicleNumber string
	Location      string
	SlotID        string
	Floor         int
	Date          string
	StartTime     string
	DurationHours int
	StartAt       time.Time
	EndAt         time.Time
	Amount        float64
	Status        string
	CreatedAt     time.Time
}
