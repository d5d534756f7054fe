package update_trainer_config

import (
	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

// UpdateConfigRequest HTTP request model.
// Каждая секция опциональна: обновляются только переданные секции.
type UpdateConfigRequest struct {
	Schedule  *models.WeeklyScheduleDTO   `json:"schedule,omitempty"`
	Policies  *models.PoliciesDTO         `json:"policies,omitempty"`
	Durations *[]models.SessionDurationDTO `json:"durations,omitempty"`
}

// IsEmpty проверяет, что запрос не содержит ни одной секции
func (r *UpdateConfigRequest) IsEmpty() bool {
	return r.Schedule == nil && r.Policies == nil && r.Durations == nil
}
