package models

import "time"

// ScopeAll метка прохода без фильтра по локации
const ScopeAll = "all"

// SkippedReservation активное бронирование, оставленное без изменений
type SkippedReservation struct {
	ReservationID int64
	Reason        string
}

// FailedReservation бронирование, истечение которого не удалось записать
type FailedReservation struct {
	ReservationID int64
	Error         string
}

// Conflict место, на которое ссылается больше одного активного бронирования
type Conflict struct {
	Location       string
	SlotID         string
	ReservationIDs []int64 // в порядке создания, первое определяет booked_by
}

// Report итог одного прохода реконсиляции
type Report struct {
	Scope        string
	StartedAt    time.Time
	Duration     time.Duration
	Expired      []int64
	Skipped      []SkippedReservation
	Failed       []FailedReservation
	MissingSlots []string // location/slot_id бронирований, чьих мест нет в реестре
	Booked       int
	Released     int
	Conflicts    []Conflict
}
