package create_reservation

import (
	"errors"
	"net/http"

	"github.com/mcenturion/turnos-api/internal/api/handlers"
	createReservation "github.com/mcenturion/turnos-api/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDateOrTime  = "formato de fecha u hora inválido, se espera YYYY-MM-DD y HH:MM"
	msgServiceNotFound    = "servicio no encontrado"
	msgDateNotAvailable   = "la fecha seleccionada no está disponible"
	msgTimeNotOffered     = "el horario no pertenece a los horarios del servicio"
	msgSlotNotAvailable   = "el horario seleccionado ya no está disponible"
	msgInvalidInput       = "datos de la reserva incompletos o inválidos"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createReservation.ErrSlotNotAvailable):
			h.logger.Warn("POST /reservations - Slot not available: service=%q date=%s time=%s",
				req.Service, req.Date, req.Time)
			handlers.RespondError(w, http.StatusConflict, msgSlotNotAvailable)

		case errors.Is(err, createReservation.ErrServiceNotFound):
			h.logger.Warn("POST /reservations - Service not found: service_id=%v", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createReservation.ErrDateNotAvailable):
			h.logger.Warn("POST /reservations - Date not available: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateNotAvailable)

		case errors.Is(err, createReservation.ErrTimeNotOffered):
			h.logger.Warn("POST /reservations - Time not offered: service=%q time=%s", req.Service, req.Time)
			handlers.RespondBadRequest(w, msgTimeNotOffered)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /reservations - Reservation created: id=%d code=%s service=%q date=%s time=%s",
		result.ID, result.Code, result.ServiceName, req.Date, req.Time)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
