package cancel_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fitcrm/FC-ReservationService/internal/api/handlers"
	"github.com/fitcrm/FC-ReservationService/internal/api/middleware"
	"github.com/fitcrm/FC-ReservationService/internal/integrations/notifyservice"
	"github.com/fitcrm/FC-ReservationService/internal/service/reservations"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotCancel         = "бронирование нельзя отменить"
)

type Handler struct {
	service      ReservationsService
	notifyClient NotifyClient
	logger       Logger
}

func NewHandler(service ReservationsService, notifyClient NotifyClient, logger Logger) *Handler {
	return &Handler{
		service:      service,
		notifyClient: notifyClient,
		logger:       logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Тело запроса опционально: причина отмены может отсутствовать
	var req CancelRequest
	if r.ContentLength > 0 {
		if err := handlers.DecodeJSON(r, &req); err != nil {
			h.logger.Warn("PATCH /reservations/{id}/cancel - Invalid request body: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)
			return
		}
	}

	// Вызываем сервис
	if err := h.service.Cancel(r.Context(), reservationID, req.ToServiceRequest(userID)); err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrCannotCancel):
			h.logger.Warn("PATCH /reservations/{id}/cancel - Cannot cancel: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotCancel)

		default:
			h.logger.Error("PATCH /reservations/{id}/cancel - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Уведомление best-effort: ошибка не влияет на ответ клиенту
	if cancelled, err := h.service.GetByID(r.Context(), reservationID, userID); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Failed to load reservation for notification: reservation_id=%d, error=%v",
			reservationID, err)
	} else if err := h.notifyClient.Notify(r.Context(), &notifyservice.Notification{
		Event:         notifyservice.EventReservationCancelled,
		ReservationID: cancelled.ID,
		ClientID:      cancelled.ClientID,
		TrainerID:     cancelled.TrainerID,
		Date:          cancelled.Date,
		StartTime:     cancelled.StartTime,
	}); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/cancel - Failed to send notification: reservation_id=%d, error=%v",
			reservationID, err)
	}

	h.logger.Info("PATCH /reservations/{id}/cancel - Cancelled successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondNoContent(w)
}
