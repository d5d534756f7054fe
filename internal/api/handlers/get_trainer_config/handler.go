package get_trainer_config

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fitcrm/FC-ReservationService/internal/api/handlers"
)

const (
	msgInvalidTrainerID = "некорректный ID тренера"
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

// Handle GET /api/v1/trainers/{trainerId}/config
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем trainerId из URL
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/config - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Вызываем сервис
	result, err := h.service.Get(r.Context(), trainerID)
	if err != nil {
		h.logger.Error("GET /trainers/{id}/config - Failed: trainer_id=%d, error=%v", trainerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /trainers/{id}/config - Fetched successfully: trainer_id=%d", trainerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
