package domain

import (
	"time"

	"github.com/fitcrm/FC-ReservationService/pkg/types"
)

// AvailabilitySlot is a candidate bookable interval for one trainer and date.
// It is a value regenerated on every computation, never persisted or cached.
type AvailabilitySlot struct {
	TrainerID       int64
	Date            time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
}
