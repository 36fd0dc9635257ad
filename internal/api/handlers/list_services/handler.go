package list_services

import (
	"net/http"

	"github.com/mcenturion/turnos-api/internal/api/handlers"
	"github.com/mcenturion/turnos-api/internal/service/catalog/models"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ServiceListResponse список услуг
type ServiceListResponse struct {
	Services []*models.ServiceResponse `json:"services"`
	Total    int                       `json:"total"`
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /services - Services listed: total=%d", len(services))
	handlers.RespondJSON(w, http.StatusOK, &ServiceListResponse{
		Services: services,
		Total:    len(services),
	})
}
