package get_trainer_config

import (
	"context"

	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

type TrainerConfigService interface {
	Get(ctx context.Context, trainerID int64) (*models.TrainerConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
