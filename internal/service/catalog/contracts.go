package catalog

import (
	"context"

	"github.com/mcenturion/turnos-api/internal/domain"
)

// ServiceRepository интерфейс репозитория услуг
type ServiceRepository interface {
	Create(ctx context.Context, svc *domain.Service) (*domain.Service, error)
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
	List(ctx context.Context) ([]*domain.Service, error)
	Update(ctx context.Context, id int64, update domain.ServiceUpdate) error
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория бронирований
// (каскадные операции при изменении каталога)
type ReservationRepository interface {
	DetachService(ctx context.Context, serviceID int64) error
	UpdateServiceName(ctx context.Context, serviceID int64, name string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
