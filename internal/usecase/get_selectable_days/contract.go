package get_selectable_days

import (
	"context"
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
)

// ServiceRepository интерфейс для работы с хранилищем услуг
type ServiceRepository interface {
	List(ctx context.Context) ([]*domain.Service, error)
}

// TimeProvider абстракция текущего времени для тестируемости
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
