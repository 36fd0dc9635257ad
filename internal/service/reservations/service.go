package reservations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mcenturion/turnos-api/internal/availability"
	"github.com/mcenturion/turnos-api/internal/domain"
	reservationRepo "github.com/mcenturion/turnos-api/internal/infra/storage/reservation"
	"github.com/mcenturion/turnos-api/internal/service/reservations/models"
	"github.com/mcenturion/turnos-api/pkg/ptr"
	"github.com/mcenturion/turnos-api/pkg/types"
)

// Service сервис журнала бронирований: списки, переходы статусов,
// перенос и месячная статистика
type Service struct {
	reservationRepo ReservationRepository
	serviceRepo     ServiceRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	serviceRepo ServiceRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// List получает бронирования с фильтрацией по точной дате или диапазону
// [from, to). Без фильтров возвращает весь журнал, упорядоченный по (дата, время).
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	filter, err := buildFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	reservations, err := s.reservationRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// UpdateStatus переводит бронирование в новый статус.
// Неизвестное значение - ошибка валидации, сохраненный статус не меняется.
// Повторная установка текущего статуса - no-op (переходы идемпотентны).
// Легальное значение, нарушающее таблицу переходов, - конфликт.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: reservation id=%d -> status=%q", id, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for id=%d", req.Status, id)
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, req.Status)
	}

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("UpdateStatus: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if res.Status == newStatus {
		s.logger.Info("UpdateStatus: reservation id=%d already has status=%s", id, newStatus)
		return models.FromDomainReservation(res), nil
	}

	if !res.Status.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for id=%d", res.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, res.Status, newStatus)
	}

	if err := s.reservationRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			return nil, ErrReservationNotFound
		}
		s.logger.Error("UpdateStatus: repository error for id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	res.Status = newStatus
	s.logger.Info("UpdateStatus: reservation id=%d updated to status=%s", id, newStatus)
	return models.FromDomainReservation(res), nil
}

// Reschedule переносит бронирование на новые дату и время.
// Доступность целевого слота проверяется движком в сериализуемой транзакции;
// собственный слот бронирования исключается из проверки, поэтому перенос
// "на то же место" всегда проходит. Занятый слот - конфликт.
func (s *Service) Reschedule(ctx context.Context, id int64, req *models.RescheduleRequest) (*models.ReservationResponse, error) {
	s.logger.Info("Reschedule: reservation id=%d -> date=%s time=%s", id, req.Date, req.Time)

	if req.Date == "" || req.Time == "" {
		s.logger.Warn("Reschedule: missing date or time for id=%d", id)
		return nil, fmt.Errorf("%w: date and time are required", ErrInvalidInput)
	}

	newDate, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("Reschedule: invalid date=%q for id=%d", req.Date, id)
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	newTime, err := types.NewTimeStringFromString(req.Time)
	if err != nil {
		s.logger.Warn("Reschedule: invalid time=%q for id=%d", req.Time, id)
		return nil, fmt.Errorf("%w: invalid time format", ErrInvalidInput)
	}

	var result *domain.Reservation

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Reschedule - get reservation: %v", ErrInternal, err)
		}

		services, err := s.serviceRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("%w: Reschedule - list services: %v", ErrInternal, err)
		}

		// Активные брони целевой даты с блокировкой строк (FOR UPDATE в транзакции)
		held, err := s.reservationRepo.List(txCtx, domain.ReservationsFilter{
			Date:     &newDate,
			OnlyHeld: true,
		})
		if err != nil {
			return fmt.Errorf("%w: Reschedule - list reservations: %v", ErrInternal, err)
		}

		free := availability.AvailableSlots(held, services, newDate, res.ServiceID, res.ServiceName, ptr.Ptr(res.ID))
		if !containsTime(free, newTime) {
			s.logger.Warn("Reschedule: slot %s %s not available for id=%d", req.Date, req.Time, id)
			return ErrSlotNotAvailable
		}

		if err := s.reservationRepo.UpdateSchedule(txCtx, id, newDate, newTime); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: Reschedule - update schedule: %v", ErrInternal, err)
		}

		res.Date = newDate
		res.Time = newTime
		result = res
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrInternal) {
			s.logger.Error("Reschedule: failed for id=%d: %v", id, err)
		}
		return nil, err
	}

	s.logger.Info("Reschedule: reservation id=%d moved to %s %s", id, req.Date, req.Time)
	return models.FromDomainReservation(result), nil
}

// MonthlyRevenue считает выручку за месяц: только завершенные брони,
// цена резолвится по id услуги, затем по снимку названия, иначе 0.
func (s *Service) MonthlyRevenue(ctx context.Context, month string) (*models.RevenueResponse, error) {
	monthStart, err := time.Parse(domain.MonthFormat, month)
	if err != nil {
		s.logger.Warn("MonthlyRevenue: invalid month=%q", month)
		return nil, fmt.Errorf("%w: invalid month format, expected YYYY-MM", ErrInvalidInput)
	}
	monthEnd := monthStart.AddDate(0, 1, 0)

	completed := domain.StatusCompleted
	reservations, err := s.reservationRepo.List(ctx, domain.ReservationsFilter{
		StartDate: &monthStart,
		EndDate:   &monthEnd,
		Status:    &completed,
	})
	if err != nil {
		s.logger.Error("MonthlyRevenue: repository error: %v", err)
		return nil, fmt.Errorf("%w: MonthlyRevenue - repository error: %v", ErrInternal, err)
	}

	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("MonthlyRevenue: failed to list services: %v", err)
		return nil, fmt.Errorf("%w: MonthlyRevenue - list services: %v", ErrInternal, err)
	}

	lines := availability.MonthlyRevenue(reservations, services, monthStart)

	s.logger.Info("MonthlyRevenue: month=%s, %d completed reservations, %d services",
		month, len(reservations), len(lines))
	return models.FromRevenueLines(monthStart, lines), nil
}

// buildFilter конвертирует запрос списка в доменный фильтр
func buildFilter(req *models.ListReservationsRequest) (domain.ReservationsFilter, error) {
	var filter domain.ReservationsFilter

	if req.Date != nil {
		date, err := time.Parse(domain.DateFormat, *req.Date)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
		}
		filter.Date = &date
		return filter, nil
	}

	if req.From != nil {
		from, err := time.Parse(domain.DateFormat, *req.From)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid from date", ErrInvalidInput)
		}
		filter.StartDate = &from
	}
	if req.To != nil {
		to, err := time.Parse(domain.DateFormat, *req.To)
		if err != nil {
			return filter, fmt.Errorf("%w: invalid to date", ErrInvalidInput)
		}
		filter.EndDate = &to
	}

	return filter, nil
}

func containsTime(times []types.TimeString, target types.TimeString) bool {
	for _, t := range times {
		if t == target {
			return true
		}
	}
	return false
}
