package create_reservation

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	ClientID      int64                    // ID клиента
	TrainerID     int64                    // ID тренера
	LocationID    *int64                   // ID локации (для учета блэкаутов, опционально)
	SessionTypeID *int64                   // ID длительности из каталога (nil - неявные 60 минут)
	Date          time.Time                // Дата бронирования (без времени)
	StartTime     types.TimeString         // Время начала (например, "10:00")
	Source        domain.ReservationSource // Источник создания
	Notes         *string                  // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64            // ID созданного бронирования
	ClientID        int64            // ID клиента
	TrainerID       int64            // ID тренера
	SessionTypeID   *int64           // ID длительности из каталога
	Date            time.Time        // Дата бронирования
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время конца
	DurationMinutes int              // Длительность в минутах
	Status          string           // Статус бронирования
	Source          string           // Источник создания

	// Денормализованные данные каталога
	SessionName string  // Название типа сессии
	Price       float64 // Цена на момент бронирования
	Notes       *string // Заметки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
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
