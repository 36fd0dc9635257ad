package get_selectable_days

import (
	"context"
	"fmt"
	"time"

	"github.com/mcenturion/turnos-api/internal/availability"
	"github.com/mcenturion/turnos-api/internal/domain"
)

// UseCase use case получения списка выбираемых дней месяца
type UseCase struct {
	serviceRepo  ServiceRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(serviceRepo ServiceRepository, timeProvider TimeProvider, logger Logger) *UseCase {
	return &UseCase{
		serviceRepo:  serviceRepo,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// Execute перебирает дни месяца и оставляет те, что не в прошлом и чей
// день недели входит в рабочую маску услуги
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if req.ServiceID == nil && req.ServiceName == "" {
		return nil, fmt.Errorf("%w: service reference is required", ErrInvalidInput)
	}
	if req.Month.IsZero() {
		return nil, fmt.Errorf("%w: month is required", ErrInvalidInput)
	}

	services, err := uc.serviceRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetSelectableDays: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	svc := availability.ResolveService(services, req.ServiceID, req.ServiceName)
	if req.ServiceID != nil && (svc == nil || svc.ID != *req.ServiceID) {
		uc.logger.Warn("GetSelectableDays: service id=%d not found", *req.ServiceID)
		return nil, ErrServiceNotFound
	}

	serviceID := req.ServiceID
	serviceName := req.ServiceName
	if svc != nil {
		id := svc.ID
		serviceID = &id
		serviceName = svc.Name
	}

	allowedDays := availability.ServiceDays(svc)
	now := uc.timeProvider.Now()

	monthStart := time.Date(req.Month.Year(), req.Month.Month(), 1, 0, 0, 0, 0, req.Month.Location())
	nextMonth := monthStart.AddDate(0, 1, 0)

	var days []time.Time
	for d := monthStart; d.Before(nextMonth); d = d.AddDate(0, 0, 1) {
		if availability.IsDateSelectable(d, now, allowedDays) {
			days = append(days, d)
		}
	}

	uc.logger.Info("GetSelectableDays: service=%q month=%s -> %d selectable days",
		serviceName, monthStart.Format(domain.MonthFormat), len(days))

	return &Response{
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Month:       monthStart,
		Days:        days,
	}, nil
}
