package models

import (
	"errors"
	"time"

	"github.com/mcenturion/turnos-api/internal/availability"
	"github.com/mcenturion/turnos-api/internal/domain"
)

// ErrInvalidStatus возвращается при некорректном статусе
var ErrInvalidStatus = errors.New("invalid reservation status")

// Request модели

// UpdateStatusRequest запрос на смену статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// RescheduleRequest запрос на перенос бронирования
type RescheduleRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
	Time string `json:"time"` // HH:MM
}

// ListReservationsRequest запрос списка бронирований.
// Date - точная дата; From/To - диапазон [From, To) для месячного календаря.
type ListReservationsRequest struct {
	Date *string `json:"date,omitempty"`
	From *string `json:"from,omitempty"`
	To   *string `json:"to,omitempty"`
}

// Response модели

// ReservationResponse представление бронирования для API
type ReservationResponse struct {
	ID          int64  `json:"id"`
	Code        string `json:"reservationCode"`
	Name        string `json:"name"`
	Whatsapp    string `json:"whatsapp"`
	ServiceID   *int64 `json:"serviceId"`
	ServiceName string `json:"service"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []*ReservationResponse `json:"reservations"`
	Total        int                    `json:"total"`
}

// RevenueLineResponse строка месячной статистики по услуге
type RevenueLineResponse struct {
	ServiceName string  `json:"service"`
	Total       float64 `json:"total"`
	Count       int     `json:"count"`
}

// RevenueResponse месячная статистика выручки (только завершенные брони)
type RevenueResponse struct {
	Month string                 `json:"month"` // YYYY-MM
	Lines []*RevenueLineResponse `json:"lines"`
	Total float64                `json:"total"`
}

// ToDomainStatus валидирует и конвертирует строку статуса
func ToDomainStatus(raw string) (domain.ReservationStatus, error) {
	status := domain.ReservationStatus(raw)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// FromDomainReservation конвертирует доменную модель в ответ API
func FromDomainReservation(r *domain.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:          r.ID,
		Code:        r.Code,
		Name:        r.Name,
		Whatsapp:    r.Whatsapp,
		ServiceID:   r.ServiceID,
		ServiceName: r.ServiceName,
		Date:        r.Date.Format(domain.DateFormat),
		Time:        r.Time.String(),
		Status:      string(r.Status),
		CreatedAt:   r.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   r.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainReservationList конвертирует список доменных моделей в ответ API
func FromDomainReservationList(reservations []*domain.Reservation) *ReservationListResponse {
	out := make([]*ReservationResponse, len(reservations))
	for i, r := range reservations {
		out[i] = FromDomainReservation(r)
	}
	return &ReservationListResponse{
		Reservations: out,
		Total:        len(out),
	}
}

// FromRevenueLines конвертирует результат движка в ответ API
func FromRevenueLines(month time.Time, lines []availability.RevenueLine) *RevenueResponse {
	out := make([]*RevenueLineResponse, len(lines))
	total := 0.0
	for i, line := range lines {
		out[i] = &RevenueLineResponse{
			ServiceName: line.ServiceName,
			Total:       line.Total,
			Count:       line.Count,
		}
		total += line.Total
	}
	return &RevenueResponse{
		Month: month.Format(domain.MonthFormat),
		Lines: out,
		Total: total,
	}
}
