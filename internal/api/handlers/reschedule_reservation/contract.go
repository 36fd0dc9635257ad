package reschedule_reservation

import (
	"context"

	"github.com/mcenturion/turnos-api/internal/service/reservations/models"
)

type ReservationService interface {
	Reschedule(ctx context.Context, id int64, req *models.RescheduleRequest) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
