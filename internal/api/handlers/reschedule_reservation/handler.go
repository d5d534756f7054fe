package reschedule_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fitcrm/FC-ReservationService/internal/api/handlers"
	"github.com/fitcrm/FC-ReservationService/internal/api/middleware"
	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/internal/integrations/notifyservice"
	rescheduleReservation "github.com/fitcrm/FC-ReservationService/internal/usecase/reschedule_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID бронирования"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgInvalidDate          = "некорректный формат даты или времени"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "бронирование не найдено"
	msgForbidden            = "доступ запрещен"
	msgCannotReschedule     = "бронирование нельзя перенести"
	msgRescheduleConflict   = "новый временной слот уже занят"
	msgInvalidNewDate       = "некорректная новая дата"
	msgDateTooFar           = "новая дата слишком далеко в будущем"
	msgTooLate              = "слишком поздно для переноса на этот слот"
	msgDateBlackedOut       = "новая дата недоступна для бронирования"
	msgOutsideWorkingHours  = "новый слот вне рабочих часов тренера"
)

type Handler struct {
	useCase      RescheduleReservationUseCase
	notifyClient NotifyClient
	logger       Logger
}

func NewHandler(useCase RescheduleReservationUseCase, notifyClient NotifyClient, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		notifyClient: notifyClient,
		logger:       logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем reservationId из URL
	vars := mux.Vars(r)
	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(reservationID, userID)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, rescheduleReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Access denied: reservation_id=%d, user_id=%d",
				reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleReservation.ErrCannotReschedule):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Cannot reschedule: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgCannotReschedule)

		case errors.Is(err, rescheduleReservation.ErrRescheduleConflict):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Slot conflict: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgRescheduleConflict)

		case errors.Is(err, rescheduleReservation.ErrInvalidDate):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid date: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgInvalidNewDate)

		case errors.Is(err, rescheduleReservation.ErrDateTooFarInFuture):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Date too far: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, rescheduleReservation.ErrTooLateToBook):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Too late: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgTooLate)

		case errors.Is(err, rescheduleReservation.ErrDateBlackedOut):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Date blacked out: reservation_id=%d", reservationID)
			handlers.RespondError(w, http.StatusConflict, msgDateBlackedOut)

		case errors.Is(err, rescheduleReservation.ErrOutsideWorkingHours):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Outside working hours: reservation_id=%d", reservationID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, rescheduleReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/reschedule - Invalid input: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PATCH /reservations/{id}/reschedule - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Уведомление best-effort: ошибка не влияет на ответ клиенту
	if err := h.notifyClient.Notify(r.Context(), &notifyservice.Notification{
		Event:         notifyservice.EventReservationRescheduled,
		ReservationID: result.ID,
		ClientID:      result.ClientID,
		TrainerID:     result.TrainerID,
		Date:          result.Date.Format(domain.DateFormat),
		StartTime:     result.StartTime.String(),
	}); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/reschedule - Failed to send notification: reservation_id=%d, error=%v",
			result.ID, err)
	}

	h.logger.Info("PATCH /reservations/{id}/reschedule - Rescheduled successfully: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
