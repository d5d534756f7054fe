package create_reservation

import (
	"errors"
	"net/http"

	"github.com/fitcrm/FC-ReservationService/internal/api/handlers"
	"github.com/fitcrm/FC-ReservationService/internal/api/middleware"
	"github.com/fitcrm/FC-ReservationService/internal/domain"
	"github.com/fitcrm/FC-ReservationService/internal/integrations/notifyservice"
	createReservation "github.com/fitcrm/FC-ReservationService/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotConflict        = "выбранный временной слот уже занят"
	msgSessionTypeNotFound = "тип сессии не найден"
	msgInvalidReservDate   = "некорректная дата бронирования"
	msgDateTooFar          = "дата бронирования слишком далеко в будущем"
	msgTooLateToBook       = "слишком поздно для бронирования этого слота"
	msgDateBlackedOut      = "выбранная дата недоступна для бронирования"
	msgOutsideWorkingHours = "слот вне рабочих часов тренера"
)

type Handler struct {
	useCase      CreateReservationUseCase
	notifyClient NotifyClient
	logger       Logger
}

func NewHandler(useCase CreateReservationUseCase, notifyClient NotifyClient, logger Logger) *Handler {
	return &Handler{
		useCase:      useCase,
		notifyClient: notifyClient,
		logger:       logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	clientID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(clientID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrSlotConflict):
			h.logger.Warn("POST /reservations - Slot conflict: client_id=%d, trainer_id=%d", clientID, req.TrainerID)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createReservation.ErrSessionTypeNotFound):
			h.logger.Warn("POST /reservations - Session type not found: client_id=%d, trainer_id=%d", clientID, req.TrainerID)
			handlers.RespondNotFound(w, msgSessionTypeNotFound)

		case errors.Is(err, createReservation.ErrInvalidDate):
			h.logger.Warn("POST /reservations - Invalid date: client_id=%d, trainer_id=%d", clientID, req.TrainerID)
			handlers.RespondBadRequest(w, msgInvalidReservDate)

		case errors.Is(err, createReservation.ErrDateTooFarInFuture):
			h.logger.Warn("POST /reservations - Date too far in future: client_id=%d, trainer_id=%d", clientID, req.TrainerID)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createReservation.ErrTooLateToBook):
			h.logger.Warn("POST /reservations - Too late to book: client_id=%d, trainer_id=%d", clientID, req.TrainerID)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createReservation.ErrDateBlackedOut):
			h.logger.Warn("POST /reservations - Date blacked out: client_id=%d, trainer_id=%d", clientID, req.TrainerID)
			handlers.RespondError(w, http.StatusConflict, msgDateBlackedOut)

		case errors.Is(err, createReservation.ErrOutsideWorkingHours):
			h.logger.Warn("POST /reservations - Outside working hours: client_id=%d, trainer_id=%d", clientID, req.TrainerID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: client_id=%d, error=%v", clientID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: client_id=%d, trainer_id=%d, error=%v",
				clientID, req.TrainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Уведомление best-effort: ошибка не влияет на ответ клиенту
	if err := h.notifyClient.Notify(r.Context(), &notifyservice.Notification{
		Event:         notifyservice.EventReservationCreated,
		ReservationID: result.ID,
		ClientID:      result.ClientID,
		TrainerID:     result.TrainerID,
		Date:          result.Date.Format(domain.DateFormat),
		StartTime:     result.StartTime.String(),
	}); err != nil {
		h.logger.Warn("POST /reservations - Failed to send notification: reservation_id=%d, error=%v", result.ID, err)
	}

	h.logger.Info("POST /reservations - Reservation created successfully: reservation_id=%d, client_id=%d, trainer_id=%d",
		result.ID, clientID, req.TrainerID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
