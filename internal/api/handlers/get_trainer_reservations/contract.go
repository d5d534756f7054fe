package get_trainer_reservations

import (
	"context"

	"github.com/fitcrm/FC-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	GetTrainerReservations(ctx context.Context, req *models.GetTrainerReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
