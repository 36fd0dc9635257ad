package get_available_slots

import (
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
	getAvailableSlots "github.com/mcenturion/turnos-api/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ServiceID *int64   `json:"serviceId"`
	Service   string   `json:"service"`
	Date      string   `json:"date"`
	Times     []string `json:"times"`
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(serviceID int64, dateStr string, excludeID *int64) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ServiceID:            &serviceID,
		Date:                 date,
		ExcludeReservationID: excludeID,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	times := make([]string, len(resp.Times))
	for i, t := range resp.Times {
		times[i] = t.String()
	}

	return &AvailableSlotsResponse{
		ServiceID: resp.ServiceID,
		Service:   resp.ServiceName,
		Date:      resp.Date.Format(domain.DateFormat),
		Times:     times,
	}
}
