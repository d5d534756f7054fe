package create_reservation

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	createReservation "github.com/fitcrm/FC-ReservationService/internal/usecase/create_reservation"
	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	TrainerID     int64   `json:"trainerId"`
	LocationID    *int64  `json:"locationId,omitempty"`
	SessionTypeID *int64  `json:"sessionTypeId,omitempty"`
	Date          string  `json:"date"`      // "2026-09-15"
	StartTime     string  `json:"startTime"` // "10:00"
	Source        string  `json:"source,omitempty"`
	Notes         *string `json:"notes,omitempty"`
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
func (r *CreateReservationRequest) ToUseCaseRequest(clientID int64) (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	// Источник по умолчанию - клиентское приложение
	source := domain.ReservationSource(r.Source)
	if source == "" {
		source = domain.SourceClientApp
	}

	return &createReservation.Request{
		ClientID:      clientID,
		TrainerID:     r.TrainerID,
		LocationID:    r.LocationID,
		SessionTypeID: r.SessionTypeID,
		Date:          date,
		StartTime:     startTime,
		Source:        source,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
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
