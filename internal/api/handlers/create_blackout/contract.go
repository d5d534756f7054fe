package create_blackout

import (
	"context"

	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

type TrainerConfigService interface {
	CreateBlackout(ctx context.Context, trainerID int64, req *models.CreateBlackoutRequest) (*models.TrainerConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
