package get_available_slots

import (
	"context"
	"fmt"

	"github.com/mcenturion/turnos-api/internal/availability"
	"github.com/mcenturion/turnos-api/internal/domain"
)

// UseCase use case получения доступных слотов для бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	serviceRepo     ServiceRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	serviceRepo ServiceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		logger:          logger,
	}
}

// Execute выполняет use case получения доступных слотов: шаблон услуги
// минус удержанные времена (pending и approved) на запрошенную дату
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	services, err := uc.serviceRepo.List(ctx)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
	}

	svc := availability.ResolveService(services, req.ServiceID, req.ServiceName)
	if req.ServiceID != nil && (svc == nil || svc.ID != *req.ServiceID) {
		uc.logger.Warn("GetAvailableSlots: service id=%d not found", *req.ServiceID)
		return nil, ErrServiceNotFound
	}

	serviceID := req.ServiceID
	serviceName := req.ServiceName
	if svc != nil {
		id := svc.ID
		serviceID = &id
		serviceName = svc.Name
	}

	held, err := uc.reservationRepo.List(ctx, domain.ReservationsFilter{
		Date:     &req.Date,
		OnlyHeld: true,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	times := availability.AvailableSlots(held, services, req.Date, serviceID, serviceName, req.ExcludeReservationID)

	uc.logger.Info("GetAvailableSlots: service=%q date=%s -> %d free slots",
		serviceName, req.Date.Format(domain.DateFormat), len(times))

	return &Response{
		ServiceID:   serviceID,
		ServiceName: serviceName,
		Date:        req.Date,
		Times:       times,
	}, nil
}

func validateRequest(req *Request) error {
	if req.ServiceID == nil && req.ServiceName == "" {
		return fmt.Errorf("%w: service reference is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
