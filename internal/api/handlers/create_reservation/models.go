package create_reservation

import (
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
	createReservation "github.com/mcenturion/turnos-api/internal/usecase/create_reservation"
	"github.com/mcenturion/turnos-api/pkg/types"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	Name      string  `json:"name"`
	Whatsapp  string  `json:"whatsapp"`
	ServiceID *int64  `json:"serviceId,omitempty"`
	Service   string  `json:"service"`
	Date      string  `json:"date"` // "2026-03-15"
	Time      string  `json:"time"` // "10:00"
	Status    *string `json:"status,omitempty"`
}

// ReservationResponse HTTP response model
type ReservationResponse struct {
	ID        int64  `json:"id"`
	Code      string `json:"reservationCode"`
	Name      string `json:"name"`
	Whatsapp  string `json:"whatsapp"`
	ServiceID *int64 `json:"serviceId"`
	Service   string `json:"service"`
	Date      string `json:"date"`
	Time      string `json:"time"`
	Status    string `json:"status"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest() (*createReservation.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.Time)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		Name:        r.Name,
		Whatsapp:    r.Whatsapp,
		ServiceID:   r.ServiceID,
		ServiceName: r.Service,
		Date:        date,
		Time:        startTime,
		Status:      r.Status,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response) *ReservationResponse {
	return &ReservationResponse{
		ID:        resp.ID,
		Code:      resp.Code,
		Name:      resp.Name,
		Whatsapp:  resp.Whatsapp,
		ServiceID: resp.ServiceID,
		Service:   resp.ServiceName,
		Date:      resp.Date.Format(domain.DateFormat),
		Time:      resp.Time.String(),
		Status:    resp.Status,
		CreatedAt: resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt: resp.UpdatedAt.Format(time.RFC3339),
	}
}
