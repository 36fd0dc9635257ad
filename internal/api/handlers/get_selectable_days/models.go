package get_selectable_days

import (
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
	getSelectableDays "github.com/mcenturion/turnos-api/internal/usecase/get_selectable_days"
)

// SelectableDaysResponse HTTP response model
type SelectableDaysResponse struct {
	ServiceID *int64   `json:"serviceId"`
	Service   string   `json:"service"`
	Month     string   `json:"month"` // YYYY-MM
	Days      []string `json:"days"`  // YYYY-MM-DD
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(serviceID int64, monthStr string) (*getSelectableDays.Request, error) {
	// Парсим месяц
	month, err := time.Parse(domain.MonthFormat, monthStr)
	if err != nil {
		return nil, err
	}

	return &getSelectableDays.Request{
		ServiceID: &serviceID,
		Month:     month,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getSelectableDays.Response) *SelectableDaysResponse {
	days := make([]string, len(resp.Days))
	for i, d := range resp.Days {
		days[i] = d.Format(domain.DateFormat)
	}

	return &SelectableDaysResponse{
		ServiceID: resp.ServiceID,
		Service:   resp.ServiceName,
		Month:     resp.Month.Format(domain.MonthFormat),
		Days:      days,
	}
}
