package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mcenturion/turnos-api/internal/domain"
	serviceRepo "github.com/mcenturion/turnos-api/internal/infra/storage/service"
	"github.com/mcenturion/turnos-api/internal/service/catalog/models"
)

// Service сервис для управления каталогом услуг
type Service struct {
	serviceRepo     ServiceRepository
	reservationRepo ReservationRepository
	txManager       TransactionManager
	logger          Logger
}

// NewService создает новый экземпляр сервиса каталога
func NewService(
	serviceRepo ServiceRepository,
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		serviceRepo:     serviceRepo,
		reservationRepo: reservationRepo,
		txManager:       txManager,
		logger:          logger,
	}
}

// List возвращает все услуги, упорядоченные по названию
func (s *Service) List(ctx context.Context) ([]*models.ServiceResponse, error) {
	services, err := s.serviceRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainServiceList(services), nil
}

// Create создает услугу. Пустая маска доступности нормализуется к дефолтной
// (Пн-Сб, почасовая лестница 10:00-20:00).
func (s *Service) Create(ctx context.Context, req *models.CreateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Create: creating service name=%q", req.Name)

	name := strings.TrimSpace(req.Name)
	duration := strings.TrimSpace(req.Duration)

	if name == "" || duration == "" {
		s.logger.Warn("Create: missing required fields")
		return nil, fmt.Errorf("%w: name and duration are required", ErrInvalidInput)
	}
	if math.IsNaN(req.Price) || math.IsInf(req.Price, 0) {
		s.logger.Warn("Create: invalid price")
		return nil, fmt.Errorf("%w: price must be a valid number", ErrInvalidInput)
	}

	times, err := models.ParseTimes(req.AvailableTimes)
	if err != nil {
		s.logger.Warn("Create: invalid time in availableTimes: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	svc := &domain.Service{
		Name:           name,
		Duration:       duration,
		Price:          req.Price,
		AvailableDays:  domain.NormalizeDays(req.AvailableDays),
		AvailableTimes: domain.NormalizeTimes(times),
	}

	created, err := s.serviceRepo.Create(ctx, svc)
	if err != nil {
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: service created id=%d name=%q", created.ID, created.Name)
	return models.FromDomainService(created), nil
}

// Update применяет частичное обновление услуги.
// Переименование каскадируется на денормализованные снимки названия
// в бронированиях в той же транзакции.
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateServiceRequest) (*models.ServiceResponse, error) {
	s.logger.Info("Update: updating service id=%d", id)

	update, err := s.buildUpdate(req)
	if err != nil {
		s.logger.Warn("Update: validation failed for service id=%d: %v", id, err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.serviceRepo.Update(txCtx, id, update); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}

		// Каскад переименования: снимок названия в бронированиях обновляется
		// вместе с услугой, пока она существует
		if update.Name != nil {
			if err := s.reservationRepo.UpdateServiceName(txCtx, id, *update.Name); err != nil {
				return fmt.Errorf("%w: Update - cascade rename: %v", ErrInternal, err)
			}
		}
		return nil
	})

	if err != nil {
		if !errors.Is(err, ErrServiceNotFound) {
			s.logger.Error("Update: failed for service id=%d: %v", id, err)
		}
		return nil, err
	}

	updated, err := s.serviceRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Update: failed to reload service id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Update - reload: %v", ErrInternal, err)
	}

	s.logger.Info("Update: service updated id=%d", id)
	return models.FromDomainService(updated), nil
}

// Delete удаляет услугу. Исторические бронирования не удаляются:
// в той же транзакции их service_id обнуляется, снимок названия сохраняется.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting service id=%d", id)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.reservationRepo.DetachService(txCtx, id); err != nil {
			return fmt.Errorf("%w: Delete - detach reservations: %v", ErrInternal, err)
		}

		if err := s.serviceRepo.Delete(txCtx, id); err != nil {
			if errors.Is(err, serviceRepo.ErrServiceNotFound) {
				return ErrServiceNotFound
			}
			return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
		}
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrServiceNotFound) {
			s.logger.Warn("Delete: service id=%d not found", id)
		} else {
			s.logger.Error("Delete: failed for service id=%d: %v", id, err)
		}
		return err
	}

	s.logger.Info("Delete: service deleted id=%d, reservations detached", id)
	return nil
}

// buildUpdate валидирует запрос и собирает доменное частичное обновление
func (s *Service) buildUpdate(req *models.UpdateServiceRequest) (domain.ServiceUpdate, error) {
	var update domain.ServiceUpdate

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return update, fmt.Errorf("%w: name must not be empty", ErrInvalidInput)
		}
		update.Name = &name
	}
	if req.Duration != nil {
		duration := strings.TrimSpace(*req.Duration)
		if duration == "" {
			return update, fmt.Errorf("%w: duration must not be empty", ErrInvalidInput)
		}
		update.Duration = &duration
	}
	if req.Price != nil {
		if math.IsNaN(*req.Price) || math.IsInf(*req.Price, 0) {
			return update, fmt.Errorf("%w: price must be a valid number", ErrInvalidInput)
		}
		update.Price = req.Price
	}
	if req.AvailableDays != nil {
		days := domain.NormalizeDays(*req.AvailableDays)
		update.AvailableDays = &days
	}
	if req.AvailableTimes != nil {
		parsed, err := models.ParseTimes(*req.AvailableTimes)
		if err != nil {
			return update, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		times := domain.NormalizeTimes(parsed)
		update.AvailableTimes = &times
	}

	if update.IsEmpty() {
		return update, fmt.Errorf("%w: %v", ErrInvalidInput, ErrEmptyUpdate)
	}

	return update, nil
}
