package get_revenue_stats

import (
	"errors"
	"net/http"

	"github.com/mcenturion/turnos-api/internal/api/handlers"
	"github.com/mcenturion/turnos-api/internal/service/reservations"
)

const (
	msgMissingMonth = "el mes es obligatorio"
	msgInvalidMonth = "formato de mes inválido, se espera YYYY-MM"
)

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

// Handle GET /api/v1/stats/revenue
// Query params: month (required, YYYY-MM)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")
	if month == "" {
		h.logger.Warn("GET /stats/revenue - Missing month")
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	result, err := h.service.MonthlyRevenue(r.Context(), month)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /stats/revenue - Invalid month: month=%q, error=%v", month, err)
			handlers.RespondBadRequest(w, msgInvalidMonth)

		default:
			h.logger.Error("GET /stats/revenue - Failed to compute revenue: month=%q, error=%v", month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /stats/revenue - Revenue computed: month=%s, lines=%d, total=%.2f",
		result.Month, len(result.Lines), result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
