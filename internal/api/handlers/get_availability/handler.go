package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/fitcrm/FC-ReservationService/internal/api/handlers"
	getAvailability "github.com/fitcrm/FC-ReservationService/internal/usecase/get_availability"
	"github.com/fitcrm/FC-ReservationService/pkg/ptr"
)

const (
	msgInvalidTrainerID  = "некорректный ID тренера"
	msgInvalidLocationID = "некорректный ID локации"
	msgMissingDate       = "дата обязательна"
	msgInvalidDate       = "некорректный формат даты, ожидается YYYY-MM-DD"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/trainers/{trainerId}/availability
// Query params: date (required, YYYY-MM-DD), locationId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем trainerId из URL
	trainerIDStr := vars["trainerId"]
	trainerID, err := strconv.ParseInt(trainerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/availability - Invalid trainer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTrainerID)
		return
	}

	// Извлекаем locationId из query параметров (опционально)
	var locationID *int64
	if locationIDStr := r.URL.Query().Get("locationId"); locationIDStr != "" {
		id, err := strconv.ParseInt(locationIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /trainers/{id}/availability - Invalid location ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLocationID)
			return
		}
		locationID = ptr.Ptr(id)
	}

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /trainers/{id}/availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(trainerID, locationID, dateStr)
	if err != nil {
		h.logger.Warn("GET /trainers/{id}/availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /trainers/{id}/availability - Invalid input: trainer_id=%d, error=%v", trainerID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			// Отказ расчета не отдается клиенту как ошибка - пустой день
			h.logger.Error("GET /trainers/{id}/availability - Failed to get availability, degrading to empty day: trainer_id=%d, error=%v",
				trainerID, err)
			handlers.RespondJSON(w, http.StatusOK, &AvailabilityResponse{
				TrainerID: trainerID,
				Date:      dateStr,
				Slots:     []SlotResponse{},
			})
		}
		return
	}

	h.logger.Info("GET /trainers/{id}/availability - %d slots returned: trainer_id=%d, date=%s",
		len(result.Slots), trainerID, dateStr)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
