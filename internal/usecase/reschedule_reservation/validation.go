package reschedule_reservation

import (
	"fmt"
	"time"

	"github.com/fitcrm/FC-ReservationService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.LocationID != nil && *req.LocationID <= 0 {
		return fmt.Errorf("%w: locationID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.NewDate.IsZero() {
		return fmt.Errorf("%w: newDate is required", ErrInvalidInput)
	}

	if err := req.NewStartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	return nil
}

// fitsWorkingBlocks проверяет, что интервал [startMin, endMin) целиком
// помещается хотя бы в один рабочий блок дня
func fitsWorkingBlocks(day domain.DaySchedule, startMin, endMin int) bool {
	if !day.Available {
		return false
	}
	for _, block := range day.Blocks {
		blockStart, err := block.Start.Minutes()
		if err != nil {
			continue
		}
		blockEnd, err := block.End.Minutes()
		if err != nil {
			continue
		}
		if startMin >= blockStart && endMin <= blockEnd {
			return true
		}
	}
	return false
}

// slotMoment возвращает момент начала слота на дату date
func slotMoment(date time.Time, startMin int, now time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		startMin/60, startMin%60, 0, 0, now.Location())
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	// Обнуляем время, чтобы сравнивать только даты
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
