package get_selectable_days

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcenturion/turnos-api/internal/api/handlers"
	getSelectableDays "github.com/mcenturion/turnos-api/internal/usecase/get_selectable_days"
)

const (
	msgInvalidServiceID = "ID de servicio inválido"
	msgMissingMonth     = "el mes es obligatorio"
	msgInvalidMonth     = "formato de mes inválido, se espera YYYY-MM"
	msgServiceNotFound  = "servicio no encontrado"
)

type Handler struct {
	useCase GetSelectableDaysUseCase
	logger  Logger
}

func NewHandler(useCase GetSelectableDaysUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/services/{serviceId}/selectable-days
// Query params: month (required, YYYY-MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	// Извлекаем serviceId из URL
	serviceIDStr := vars["serviceId"]
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /services/{id}/selectable-days - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем month из query параметров
	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		h.logger.Warn("GET /services/{id}/selectable-days - Missing month: service_id=%d", serviceID)
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, monthStr)
	if err != nil {
		h.logger.Warn("GET /services/{id}/selectable-days - Invalid month format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getSelectableDays.ErrServiceNotFound):
			h.logger.Warn("GET /services/{id}/selectable-days - Service not found: service_id=%d", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /services/{id}/selectable-days - Failed to get days: service_id=%d, error=%v",
				serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /services/{id}/selectable-days - Days retrieved: service_id=%d, month=%s, days_count=%d",
		serviceID, monthStr, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, response)
}
