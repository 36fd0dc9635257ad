package get_available_slots

import (
	"time"

	"github.com/mcenturion/turnos-api/pkg/types"
)

// Request модель запроса доступных слотов для (услуга, дата).
// ExcludeReservationID позволяет флоу переноса не учитывать слот,
// который бронь занимает сейчас.
type Request struct {
	ServiceID            *int64
	ServiceName          string
	Date                 time.Time
	ExcludeReservationID *int64
}

// Response модель ответа со списком свободных времен в порядке
// шаблона услуги
type Response struct {
	ServiceID   *int64
	ServiceName string
	Date        time.Time
	Times       []types.TimeString
}
