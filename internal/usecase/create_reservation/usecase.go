package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mcenturion/turnos-api/internal/availability"
	"github.com/mcenturion/turnos-api/internal/domain"
	reservationRepo "github.com/mcenturion/turnos-api/internal/infra/storage/reservation"
	"github.com/mcenturion/turnos-api/internal/integrations/mailer"
	"github.com/mcenturion/turnos-api/pkg/rescode"
	"github.com/mcenturion/turnos-api/pkg/types"
)

// UseCase use case создания бронирования (клиентский флоу и "добавить бронь" админа)
type UseCase struct {
	reservationRepo ReservationRepository
	serviceRepo     ServiceRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	serviceRepo ServiceRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		serviceRepo:     serviceRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции; частичный уникальный индекс по слоту страхует от гонки
// конкурентных записей. Уведомление отправляется после фиксации и
// никогда не роняет операцию.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: name=%q, service=%q, date=%s, time=%s",
		req.Name, req.ServiceName, req.Date.Format(domain.DateFormat), req.Time)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время (инжектируется в тестах)
	now := uc.timeProvider.Now()

	// 3. Операции с БД в сериализуемой транзакции.
	// Коллизия кода бронирования абортирует транзакцию на стороне postgres,
	// поэтому повтор с новым кодом выполняется целой новой транзакцией.
	result, err := uc.createInTx(ctx, req, now, rescode.Generate(now))
	if errors.Is(err, reservationRepo.ErrCodeTaken) {
		uc.logger.Warn("CreateReservation: reservation code collision, retrying with a fresh code")
		result, err = uc.createInTx(ctx, req, now, rescode.Generate(uc.timeProvider.Now()))
	}
	if err != nil {
		if errors.Is(err, reservationRepo.ErrCodeTaken) {
			return nil, fmt.Errorf("%w: reservation code collision persisted after retry", ErrInternal)
		}
		return nil, err
	}

	uc.logger.Info("CreateReservation: created id=%d code=%s", result.ID, result.Code)

	// 4. Уведомление best-effort: ошибка логируется и глотается
	if err := uc.notifier.NotifyNewReservation(ctx, result); err != nil && !errors.Is(err, mailer.ErrDisabled) {
		uc.logger.Warn("CreateReservation: notification failed for code=%s: %v", result.Code, err)
	}

	return &Response{
		ID:          result.ID,
		Code:        result.Code,
		Name:        result.Name,
		Whatsapp:    result.Whatsapp,
		ServiceID:   result.ServiceID,
		ServiceName: result.ServiceName,
		Date:        result.Date,
		Time:        result.Time,
		Status:      string(result.Status),
		CreatedAt:   result.CreatedAt,
		UpdatedAt:   result.UpdatedAt,
	}, nil
}

// createInTx выполняет одну попытку создания: проверки доступности и вставка
// в одной сериализуемой транзакции. ErrCodeTaken пробрасывается наружу как
// есть - решение о повторе принимает Execute.
func (uc *UseCase) createInTx(ctx context.Context, req *Request, now time.Time, code string) (*domain.Reservation, error) {
	var result *domain.Reservation

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		services, err := uc.serviceRepo.List(txCtx)
		if err != nil {
			return fmt.Errorf("%w: failed to list services: %v", ErrInternal, err)
		}

		// 1. Резолвим услугу: id приоритетно, имя - fallback.
		// Бронь с именем несуществующей услуги допустима (исторический флоу),
		// но явный несуществующий id - ошибка.
		svc := availability.ResolveService(services, req.ServiceID, req.ServiceName)
		if req.ServiceID != nil && (svc == nil || svc.ID != *req.ServiceID) {
			uc.logger.Warn("CreateReservation: service id=%d not found", *req.ServiceID)
			return ErrServiceNotFound
		}

		var serviceID *int64
		serviceName := strings.TrimSpace(req.ServiceName)
		if svc != nil {
			id := svc.ID
			serviceID = &id
			serviceName = svc.Name
		}

		// 2. Дата: не в прошлом и день недели в маске услуги
		if !availability.IsDateSelectable(req.Date, now, availability.ServiceDays(svc)) {
			uc.logger.Warn("CreateReservation: date %s not selectable", req.Date.Format(domain.DateFormat))
			return ErrDateNotAvailable
		}

		// 3. Время должно входить в шаблон услуги
		if !containsTime(availability.ServiceTimes(svc), req.Time) {
			uc.logger.Warn("CreateReservation: time %s not in service template", req.Time)
			return ErrTimeNotOffered
		}

		// 4. Активные брони этой даты с блокировкой строк
		held, err := uc.reservationRepo.List(txCtx, domain.ReservationsFilter{
			Date:     &req.Date,
			OnlyHeld: true,
		})
		if err != nil {
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 5. Проверяем доступность слота
		free := availability.AvailableSlots(held, services, req.Date, serviceID, serviceName, nil)
		if !containsTime(free, req.Time) {
			uc.logger.Warn("CreateReservation: slot %s %s already held",
				req.Date.Format(domain.DateFormat), req.Time)
			return ErrSlotNotAvailable
		}

		// 6. Создаем бронь с денормализованным снимком названия услуги
		reservation := &domain.Reservation{
			Code:        code,
			Name:        strings.TrimSpace(req.Name),
			Whatsapp:    strings.TrimSpace(req.Whatsapp),
			ServiceID:   serviceID,
			ServiceName: serviceName,
			Date:        req.Date,
			Time:        req.Time,
			Status:      resolveStatus(req.Status),
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				return ErrSlotNotAvailable
			}
			if errors.Is(err, reservationRepo.ErrCodeTaken) {
				return err
			}
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	return result, err
}

// resolveStatus возвращает распознанный статус из запроса или pending
func resolveStatus(raw *string) domain.ReservationStatus {
	if raw == nil {
		return domain.StatusPending
	}
	status := domain.ReservationStatus(*raw)
	if !status.IsValid() {
		return domain.StatusPending
	}
	return status
}

func containsTime(times []types.TimeString, target types.TimeString) bool {
	for _, t := range times {
		if t == target {
			return true
		}
	}
	return false
}
