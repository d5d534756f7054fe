package update_trainer_config

import (
	"context"

	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

type TrainerConfigService interface {
	UpdateSchedule(ctx context.Context, trainerID int64, req *models.UpdateScheduleRequest) (*models.TrainerConfigResponse, error)
	UpdatePolicies(ctx context.Context, trainerID int64, req *models.UpdatePoliciesRequest) (*models.TrainerConfigResponse, error)
	ReplaceDurations(ctx context.Context, trainerID int64, req *models.ReplaceDurationsRequest) (*models.TrainerConfigResponse, error)
	Get(ctx context.Context, trainerID int64) (*models.TrainerConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
