package get_revenue_stats

import (
	"context"

	"github.com/mcenturion/turnos-api/internal/service/reservations/models"
)

type ReservationService interface {
	MonthlyRevenue(ctx context.Context, month string) (*models.RevenueResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
