package domain

import (
	"time"

	"github.com/salon-nv/NV-BookingService/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusConfirmed ReservationStatus = "confirmed"
	StatusCancelled ReservationStatus = "cancelled"
)

// Reservation represents a booked interval of studio time
type Reservation struct {
	ID              int64
	PublicCode      string // Опорный код для клиента (uuid), не раскрывает порядковые ID
	UserID          int64
	Date            time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          ReservationStatus

	// Denormalized client data for history and notifications
	ClientName  string
	ClientPhone *string
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the reservation still occupies its interval
// Отмененные бронирования слот не занимают
func (r *Reservation) IsActive() bool {
	return r.Status != StatusCancelled
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelled
}

// CanBeCancelled returns true if the reservation can be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanTransitionTo reports whether the status state machine allows the transition
// pending -> confirmed | cancelled; confirmed -> cancelled; cancelled is terminal
func (r *Reservation) CanTransitionTo(next ReservationStatus) bool {
	switch r.Status {
	case StatusPending:
		return next == StatusConfirmed || next == StatusCancelled
	case StatusConfirmed:
		return next == StatusCancelled
	default:
		return false
	}
}

// ReservationsFilter фильтр для получения бронирований студии
type ReservationsFilter struct {
	StartDate       *time.Time         // Начало периода (опционально, если nil - без ограничения)
	EndDate         *time.Time         // Конец периода (опционально, если nil - без ограничения)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	UserID          *int64             // Фильтр по клиенту (опционально)
	IncludeInactive bool               // Включать ли отмененные бронирования
}
