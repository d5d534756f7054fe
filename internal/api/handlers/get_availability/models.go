package get_availability

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
	getAvailability "github.com/fitcrm/FC-ReservationService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель доступного слота
type SlotResponse struct {
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "11:00"
	DurationMinutes int     `json:"durationMinutes"`
	SessionTypeID   *int64  `json:"sessionTypeId,omitempty"`
	SessionName     string  `json:"sessionName,omitempty"`
	Price           float64 `json:"price,omitempty"`
}

// AvailabilityResponse HTTP модель ответа с доступностью
type AvailabilityResponse struct {
	TrainerID int64          `json:"trainerId"`
	Date      string         `json:"date"` // "2026-09-15"
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest конвертирует параметры запроса в модель use case
func ToUseCaseRequest(trainerID int64, locationID *int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		TrainerID:  trainerID,
		LocationID: locationID,
		Date:       date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			StartTime:       s.StartTime.String(),
			EndTime:         s.EndTime.String(),
			DurationMinutes: s.DurationMinutes,
			SessionTypeID:   s.SessionTypeID,
			SessionName:     s.SessionName,
			Price:           s.Price,
		})
	}

	return &AvailabilityResponse{
		TrainerID: resp.TrainerID,
		Date:      resp.Date.Format(domain.DateFormat),
		Slots:     slots,
	}
}
