package delete_blackout

import (
	"context"
)

type TrainerConfigService interface {
	DeleteBlackout(ctx context.Context, trainerID, blackoutID, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
