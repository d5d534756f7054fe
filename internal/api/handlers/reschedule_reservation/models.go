package reschedule_reservation

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	rescheduleReservation "github.com/fitcrm/FC-ReservationService/internal/usecase/reschedule_reservation"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// RescheduleRequest HTTP request model
type RescheduleRequest struct {
	NewDate      string `json:"newDate"`      // "2026-09-20"
	NewStartTime string `json:"newStartTime"` // "11:00"
	LocationID   *int64 `json:"locationId,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID              int64   `json:"id"`
	ClientID        int64   `json:"clientId"`
	TrainerID       int64   `json:"trainerId"`
	SessionTypeID   *int64  `json:"sessionTypeId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Source          string  `json:"source"`
	SessionName     string  `json:"sessionName"`
	Price           float64 `json:"price"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RescheduleRequest) ToUseCaseRequest(reservationID, userID int64) (*rescheduleReservation.Request, error) {
	// Парсим дату
	newDate, err := time.Parse(domain.DateFormat, r.NewDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	newStartTime, err := types.NewTimeStringFromString(r.NewStartTime)
	if err != nil {
		return nil, err
	}

	return &rescheduleReservation.Request{
		ReservationID: reservationID,
		UserID:        userID,
		NewDate:       newDate,
		NewStartTime:  newStartTime,
		LocationID:    r.LocationID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *rescheduleReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:              resp.ID,
		ClientID:        resp.ClientID,
		TrainerID:       resp.TrainerID,
		SessionTypeID:   resp.SessionTypeID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Source:          resp.Source,
		SessionName:     resp.SessionName,
		Price:           resp.Price,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
