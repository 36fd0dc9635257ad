package models

import (
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
	"github.com/mcenturion/turnos-api/pkg/types"
)

// CreateServiceRequest запрос на создание услуги
type CreateServiceRequest struct {
	Name           string   `json:"name"`
	Duration       string   `json:"duration"`
	Price          float64  `json:"price"`
	AvailableDays  []int    `json:"availableDays,omitempty"`
	AvailableTimes []string `json:"availableTimes,omitempty"`
}

// UpdateServiceRequest запрос на частичное обновление услуги.
// Nil-поля не изменяются.
type UpdateServiceRequest struct {
	Name           *string   `json:"name,omitempty"`
	Duration       *string   `json:"duration,omitempty"`
	Price          *float64  `json:"price,omitempty"`
	AvailableDays  *[]int    `json:"availableDays,omitempty"`
	AvailableTimes *[]string `json:"availableTimes,omitempty"`
}

// ServiceResponse представление услуги для API
type ServiceResponse struct {
	ID             int64    `json:"id"`
	Name           string   `json:"name"`
	Duration       string   `json:"duration"`
	Price          float64  `json:"price"`
	AvailableDays  []int    `json:"availableDays"`
	AvailableTimes []string `json:"availableTimes"`
	CreatedAt      string   `json:"createdAt"`
	UpdatedAt      string   `json:"updatedAt"`
}

// FromDomainService конвертирует доменную модель в ответ API
func FromDomainService(svc *domain.Service) *ServiceResponse {
	times := make([]string, len(svc.AvailableTimes))
	for i, t := range svc.AvailableTimes {
		times[i] = t.String()
	}

	return &ServiceResponse{
		ID:             svc.ID,
		Name:           svc.Name,
		Duration:       svc.Duration,
		Price:          svc.Price,
		AvailableDays:  svc.AvailableDays,
		AvailableTimes: times,
		CreatedAt:      svc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      svc.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainServiceList конвертирует список доменных моделей в ответ API
func FromDomainServiceList(services []*domain.Service) []*ServiceResponse {
	out := make([]*ServiceResponse, len(services))
	for i, svc := range services {
		out[i] = FromDomainService(svc)
	}
	return out
}

// ParseTimes парсит список строк HH:MM в TimeString
func ParseTimes(raw []string) ([]types.TimeString, error) {
	out := make([]types.TimeString, len(raw))
	for i, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, err
		}
		out[i] = ts
	}
	return out, nil
}
