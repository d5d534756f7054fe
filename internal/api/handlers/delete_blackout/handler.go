package delete_blackout

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
	msgInvalidTrainerID  = "некорректный ID тренера"
	msgInvalidBlackoutID = "некорректный ID блэкаута"
	msgMissingUserID     = "отсутствует ID пользователя"
	msgNotFound          = "блэкаут не найден"
	msgForbidden         = "доступ запрещен"
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

// Handle DELETE /api/v1/trainers/{trainerId}/blackouts/{blackoutId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем trainerId и blackoutId из URL
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/blackouts/{blackoutId} - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	blackoutID, err := strconv.ParseInt(vars["blackoutId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /trainers/{id}/blackouts/{blackoutId} - Invalid blackout ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlackoutID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /trainers/{id}/blackouts/{blackoutId} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	// Вызываем сервис
	if err := h.service.DeleteBlackout(r.Context(), trainerID, blackoutID, userID); err != nil {
		switch {
		case errors.Is(err, trainerconfig.ErrBlackoutNotFound):
			h.logger.Warn("DELETE /trainers/{id}/blackouts/{blackoutId} - Not found: blackout_id=%d", blackoutID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, trainerconfig.ErrAccessDenied):
			h.logger.Warn("DELETE /trainers/{id}/blackouts/{blackoutId} - Access denied: trainer_id=%d, user_id=%d",
				trainerID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /trainers/{id}/blackouts/{blackoutId} - Failed: blackout_id=%d, error=%v",
				blackoutID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /trainers/{id}/blackouts/{blackoutId} - Deleted successfully: trainer_id=%d, blackout_id=%d",
		trainerID, blackoutID)
	handlers.RespondNoContent(w)
}
