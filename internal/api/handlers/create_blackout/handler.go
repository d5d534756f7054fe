package create_blackout

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fitcrm/FC-ReservationService/internal/api/handlers"
	"github.com/fitcrm/FC-ReservationService/internal/api/middleware"
	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service TrainerConfigService
	logger  Logger
}

func NewHandler(service TrainerConfigService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/trainers/{trainerId}/blackouts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем trainerId из URL
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /trainers/{id}/blackouts - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /trainers/{id}/blackouts - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBlackoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /trainers/{id}/blackouts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Вызываем сервис
	result, err := h.service.CreateBlackout(r.Context(), trainerID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, trainerconfig.ErrAccessDenied):
			h.logger.Warn("POST /trainers/{id}/blackouts - Access denied: trainer_id=%d, user_id=%d",
				trainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, trainerconfig.ErrInvalidInput):
			h.logger.Warn("POST /trainers/{id}/blackouts - Invalid input: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /trainers/{id}/blackouts - Failed: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /trainers/{id}/blackouts - Created successfully: trainer_id=%d", trainerID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
