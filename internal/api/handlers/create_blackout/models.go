package create_blackout

import (
	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

// CreateBlackoutRequest HTTP request model
type CreateBlackoutRequest struct {
	StartDate string `json:"startDate"` // "2026-09-01"
	EndDate   string `json:"endDate"`   // включительно
	Reason    string `json:"reason,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CreateBlackoutRequest) ToServiceRequest(userID int64) *models.CreateBlackoutRequest {
	return &models.CreateBlackoutRequest{
		UserID:    userID,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Reason:    r.Reason,
	}
}
