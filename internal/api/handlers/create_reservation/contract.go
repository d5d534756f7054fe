package create_reservation

import (
	"context"

	"github.com/fitcrm/FC-ReservationService/internal/integrations/notifyservice"
	createReservation "github.com/fitcrm/FC-ReservationService/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservation.Request) (*createReservation.Response, error)
}

// NotifyClient клиент для отправки уведомлений (best-effort)
type NotifyClient interface {
	Notify(ctx context.Context, n *notifyservice.Notification) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
