package domain

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	StatusPending            ReservationStatus = "pending"
	StatusConfirmed          ReservationStatus = "confirmed"
	StatusCompleted          ReservationStatus = "completed"
	StatusCancelledByClient  ReservationStatus = "cancelled_by_client"
	StatusCancelledByTrainer ReservationStatus = "cancelled_by_trainer"
	StatusNoShow             ReservationStatus = "no_show"
)

// ReservationSource tracks how the reservation was created
type ReservationSource string

const (
	SourceManual     ReservationSource = "manual"
	SourceClientApp  ReservationSource = "client_app"
	SourcePublicLink ReservationSource = "public_link"
)

// Reservation represents a booked training session
type Reservation struct {
	ID            int64
	ClientID      int64
	TrainerID     int64
	SessionTypeID *int64 // ID длительности из каталога (nil для implicit 60 минут)

	Date            time.Time // Календарная дата (без времени)
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int

	Status ReservationStatus
	Source ReservationSource

	// Denormalized data for history
	SessionName string
	Price       float64
	Notes       *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBlocking returns true if the reservation occupies the trainer's time:
// only pending and confirmed reservations participate in conflict checks.
func (r *Reservation) IsBlocking() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeCancelled returns true if the reservation can still be cancelled
func (r *Reservation) CanBeCancelled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the reservation can be moved to another slot
func (r *Reservation) CanBeRescheduled() bool {
	return r.Status == StatusPending || r.Status == StatusConfirmed
}

// IsCancelled returns true if the reservation has been cancelled by either side
func (r *Reservation) IsCancelled() bool {
	return r.Status == StatusCancelledByClient || r.Status == StatusCancelledByTrainer
}

// ValidStatus проверяет, что статус входит в список допустимых
func ValidStatus(s ReservationStatus) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted,
		StatusCancelledByClient, StatusCancelledByTrainer, StatusNoShow:
		return true
	}
	return false
}

// TrainerReservationsFilter фильтр для выборки бронирований тренера
type TrainerReservationsFilter struct {
	TrainerID       int64              // Обязательный параметр
	StartDate       *time.Time         // Начало периода (опционально)
	EndDate         *time.Time         // Конец периода (опционально)
	Status          *ReservationStatus // Фильтр по статусу (опционально)
	IncludeInactive bool               // Включать ли неактивные бронирования
	ExcludeID       *int64             // Исключить бронирование (для проверок при переносе)
}
