package cancel_reservation

import (
	"context"

	"github.com/fitcrm/FC-ReservationService/internal/integrations/notifyservice"
	"github.com/fitcrm/FC-ReservationService/internal/service/reservations/models"
)

type ReservationsService interface {
	Cancel(ctx context.Context, reservationID int64, req *models.CancelReservationRequest) error
	GetByID(ctx context.Context, id int64, userID int64) (*models.ReservationResponse, error)
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
