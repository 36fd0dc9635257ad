package list_reservations

import (
	"errors"
	"net/http"

	"github.com/mcenturion/turnos-api/internal/api/handlers"
	"github.com/mcenturion/turnos-api/internal/service/reservations"
	"github.com/mcenturion/turnos-api/internal/service/reservations/models"
)

const msgInvalidFilter = "filtros de búsqueda inválidos"

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reservations
// Query params: date (YYYY-MM-DD) либо from/to (YYYY-MM-DD, полуинтервал)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListReservationsRequest{}
	if raw := query.Get("date"); raw != "" {
		req.Date = &raw
	}
	if raw := query.Get("from"); raw != "" {
		req.From = &raw
	}
	if raw := query.Get("to"); raw != "" {
		req.To = &raw
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /reservations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /reservations - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /reservations - Reservations listed: total=%d", result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
