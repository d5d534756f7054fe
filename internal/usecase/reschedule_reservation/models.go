package reschedule_reservation

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// Request модель запроса на перенос бронирования
type Request struct {
	ReservationID int64            // ID бронирования
	UserID        int64            // ID пользователя, запросившего перенос (клиент или тренер)
	NewDate       time.Time        // Новая дата (без времени)
	NewStartTime  types.TimeString // Новое время начала
	LocationID    *int64           // ID локации (для учета блэкаутов, опционально)
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	ID              int64            // ID бронирования
	ClientID        int64            // ID клиента
	TrainerID       int64            // ID тренера
	SessionTypeID   *int64           // ID длительности из каталога
	Date            time.Time        // Новая дата
	StartTime       types.TimeString // Новое время начала
	EndTime         types.TimeString // Новое время конца
	DurationMinutes int              // Длительность (не меняется при переносе)
	Status          string           // Статус (сохраняется при переносе)
	Source          string           // Источник создания
	SessionName     string           // Название типа сессии
	Price           float64          // Цена на момент бронирования
	Notes           *string          // Заметки
	CreatedAt       time.Time        // Время создания
	UpdatedAt       time.Time        // Время обновления
}

func toResponse(r *domain.Reservation) *Response {
	return &Response{
		ID:              r.ID,
		ClientID:        r.ClientID,
		TrainerID:       r.TrainerID,
		SessionTypeID:   r.SessionTypeID,
		Date:            r.Date,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes,
		Status:          string(r.Status),
		Source:          string(r.Source),
		SessionName:     r.SessionName,
		Price:           r.Price,
		Notes:           r.Notes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}
