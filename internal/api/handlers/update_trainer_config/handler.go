package update_trainer_config

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fitcrm/FC-ReservationService/internal/api/handlers"
	"github.com/fitcrm/FC-ReservationService/internal/api/middleware"
	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig"
	"github.com/fitcrm/FC-ReservationService/internal/service/trainerconfig/models"
)

const (
	msgInvalidTrainerID   = "некорректный ID тренера"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgEmptyRequest       = "запрос не содержит ни одной секции конфигурации"
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

// Handle PUT /api/v1/trainers/{trainerId}/config
// Обновляет только переданные секции: расписание, политики, каталог длительностей.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем trainerId из URL
	vars := mux.Vars(r)
	trainerID, err := strconv.ParseInt(vars["trainerId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /trainers/{id}/config - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /trainers/{id}/config - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateConfigRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /trainers/{id}/config - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.IsEmpty() {
		h.logger.Warn("PUT /trainers/{id}/config - Empty request: trainer_id=%d", trainerID)
		handlers.RespondBadRequest(w, msgEmptyRequest)
		return
	}

	// Применяем секции по очереди, каждая возвращает актуальную конфигурацию
	var result *models.TrainerConfigResponse

	if req.Schedule != nil {
		result, err = h.service.UpdateSchedule(r.Context(), trainerID, &models.UpdateScheduleRequest{
			UserID:   userID,
			Schedule: *req.Schedule,
		})
		if err != nil {
			h.respondError(w, trainerID, userID, "schedule", err)
			return
		}
	}

	if req.Policies != nil {
		result, err = h.service.UpdatePolicies(r.Context(), trainerID, &models.UpdatePoliciesRequest{
			UserID:   userID,
			Policies: *req.Policies,
		})
		if err != nil {
			h.respondError(w, trainerID, userID, "policies", err)
			return
		}
	}

	if req.Durations != nil {
		result, err = h.service.ReplaceDurations(r.Context(), trainerID, &models.ReplaceDurationsRequest{
			UserID:    userID,
			Durations: *req.Durations,
		})
		if err != nil {
			h.respondError(w, trainerID, userID, "durations", err)
			return
		}
	}

	h.logger.Info("PUT /trainers/{id}/config - Updated successfully: trainer_id=%d, user_id=%d", trainerID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// respondError маппит ошибки сервиса конфигурации на HTTP статусы
func (h *Handler) respondError(w http.ResponseWriter, trainerID, userID int64, section string, err error) {
	switch {
	case errors.Is(err, trainerconfig.ErrAccessDenied):
		h.logger.Warn("PUT /trainers/{id}/config - Access denied: trainer_id=%d, user_id=%d, section=%s",
			trainerID, userID, section)
		handlers.RespondForbidden(w, msgForbidden)

	case errors.Is(err, trainerconfig.ErrInvalidInput):
		h.logger.Warn("PUT /trainers/{id}/config - Invalid input: trainer_id=%d, section=%s, error=%v",
			trainerID, section, err)
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("PUT /trainers/{id}/config - Failed: trainer_id=%d, section=%s, error=%v",
			trainerID, section, err)
		handlers.RespondInternalError(w)
	}
}
