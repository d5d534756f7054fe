package reschedule_reservation

import (
	"context"

	"github.com/fitcrm/FC-ReservationService/internal/integrations/notifyservice"
	rescheduleReservation "github.com/fitcrm/FC-ReservationService/internal/usecase/reschedule_reservation"
)

type RescheduleReservationUseCase interface {
	Execute(ctx context.Context, req *rescheduleReservation.Request) (*rescheduleReservation.Response, error)
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
