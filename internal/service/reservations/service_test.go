package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcenturion/turnos-api/internal/domain"
	reservationRepo "github.com/mcenturion/turnos-api/internal/infra/storage/reservation"
	"github.com/mcenturion/turnos-api/internal/service/reservations/models"
	"github.com/mcenturion/turnos-api/pkg/ptr"
	"github.com/mcenturion/turnos-api/pkg/types"
)

// --- фейки ---

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{reservations: make(map[int64]*domain.Reservation)}
}

func (r *fakeReservationRepo) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	res, ok := r.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	copied := *res
	return &copied, nil
}

func (r *fakeReservationRepo) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	out := make([]*domain.Reservation, 0)
	for _, res := range r.reservations {
		if filter.Date != nil && !res.Date.Equal(*filter.Date) {
			continue
		}
		if filter.StartDate != nil && res.Date.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && !res.Date.Before(*filter.EndDate) {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.OnlyHeld && !res.Status.OccupiesSlot() {
			continue
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *fakeReservationRepo) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error {
	res, ok := r.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Status = status
	return nil
}

func (r *fakeReservationRepo) UpdateSchedule(ctx context.Context, id int64, date time.Time, startTime types.TimeString) error {
	res, ok := r.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.Date = date
	res.Time = startTime
	return nil
}

type fakeServiceRepo struct {
	services []*domain.Service
}

func (r *fakeServiceRepo) List(ctx context.Context) ([]*domain.Service, error) {
	return r.services, nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setup() (*Service, *fakeReservationRepo, *fakeServiceRepo) {
	resRepo := newFakeReservationRepo()
	svcRepo := &fakeServiceRepo{
		services: []*domain.Service{
			{
				ID:             1,
				Name:           "Corte de pelo",
				Price:          500,
				AvailableDays:  []int{1, 2, 3, 4, 5, 6},
				AvailableTimes: []types.TimeString{"10:00", "11:00", "12:00"},
			},
		},
	}
	svc := NewService(resRepo, svcRepo, fakeTxManager{}, nopLogger{})
	return svc, resRepo, svcRepo
}

// --- тесты ---

func TestReservations_UpdateStatus_LegalTransition(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, ServiceID: ptr.Ptr(int64(1)), Date: day(2026, 3, 16), Time: "10:00",
		Status: domain.StatusPending,
	}

	updated, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)

	assert.Equal(t, "approved", updated.Status)
	assert.Equal(t, domain.StatusApproved, resRepo.reservations[1].Status)
}

func TestReservations_UpdateStatus_SameStatusIsNoop(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, Date: day(2026, 3, 16), Time: "10:00", Status: domain.StatusApproved,
	}

	updated, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Equal(t, "approved", updated.Status)
}

func TestReservations_UpdateStatus_IllegalTransition(t *testing.T) {
	svc, resRepo, _ := setup()

	tests := []struct {
		name string
		from domain.ReservationStatus
		to   string
	}{
		{name: "pending to completed skips approval", from: domain.StatusPending, to: "completed"},
		{name: "rejected is terminal", from: domain.StatusRejected, to: "approved"},
		{name: "completed is terminal", from: domain.StatusCompleted, to: "rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resRepo.reservations[1] = &domain.Reservation{
				ID: 1, Date: day(2026, 3, 16), Time: "10:00", Status: tt.from,
			}

			_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: tt.to})
			assert.ErrorIs(t, err, ErrIllegalTransition)
			// Сохраненный статус не изменился
			assert.Equal(t, tt.from, resRepo.reservations[1].Status)
		})
	}
}

func TestReservations_UpdateStatus_UnknownValue(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, Date: day(2026, 3, 16), Time: "10:00", Status: domain.StatusPending,
	}

	_, err := svc.UpdateStatus(context.Background(), 1, &models.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, domain.StatusPending, resRepo.reservations[1].Status)
}

func TestReservations_UpdateStatus_NotFound(t *testing.T) {
	svc, _, _ := setup()

	_, err := svc.UpdateStatus(context.Background(), 42, &models.UpdateStatusRequest{Status: "approved"})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReservations_Reschedule_ToFreeSlot(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: day(2026, 3, 16), Time: "10:00", Status: domain.StatusApproved,
	}

	updated, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date: "2026-03-17", Time: "11:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-03-17", updated.Date)
	assert.Equal(t, "11:00", updated.Time)
}

func TestReservations_Reschedule_OwnSlotIsNotAConflict(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: day(2026, 3, 16), Time: "10:00", Status: domain.StatusApproved,
	}

	// Перенос на собственные дату и время проходит
	updated, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date: "2026-03-16", Time: "10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "10:00", updated.Time)
}

func TestReservations_Reschedule_TakenSlotConflicts(t *testing.T) {
	svc, resRepo, _ := setup()
	target := day(2026, 3, 17)
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: day(2026, 3, 16), Time: "10:00", Status: domain.StatusApproved,
	}
	resRepo.reservations[2] = &domain.Reservation{
		ID: 2, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: target, Time: "11:00", Status: domain.StatusPending,
	}

	_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date: "2026-03-17", Time: "11:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestReservations_Reschedule_TimeOutsideTemplate(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: day(2026, 3, 16), Time: "10:00", Status: domain.StatusApproved,
	}

	_, err := svc.Reschedule(context.Background(), 1, &models.RescheduleRequest{
		Date: "2026-03-17", Time: "09:00",
	})
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestReservations_Reschedule_InvalidInput(t *testing.T) {
	svc, _, _ := setup()

	tests := []struct {
		name string
		req  *models.RescheduleRequest
	}{
		{name: "missing date", req: &models.RescheduleRequest{Time: "10:00"}},
		{name: "missing time", req: &models.RescheduleRequest{Date: "2026-03-17"}},
		{name: "bad date", req: &models.RescheduleRequest{Date: "17/03/2026", Time: "10:00"}},
		{name: "bad time", req: &models.RescheduleRequest{Date: "2026-03-17", Time: "10am"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Reschedule(context.Background(), 1, tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestReservations_List_ByExactDate(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, Date: day(2026, 3, 16), Time: "10:00", Status: domain.StatusPending,
	}
	resRepo.reservations[2] = &domain.Reservation{
		ID: 2, Date: day(2026, 3, 17), Time: "10:00", Status: domain.StatusPending,
	}

	result, err := svc.List(context.Background(), &models.ListReservationsRequest{
		Date: ptr.Ptr("2026-03-16"),
	})
	require.NoError(t, err)

	require.Equal(t, 1, result.Total)
	assert.Equal(t, int64(1), result.Reservations[0].ID)
}

func TestReservations_List_InvalidDate(t *testing.T) {
	svc, _, _ := setup()

	_, err := svc.List(context.Background(), &models.ListReservationsRequest{
		Date: ptr.Ptr("not-a-date"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReservations_MonthlyRevenue(t *testing.T) {
	svc, resRepo, _ := setup()
	resRepo.reservations[1] = &domain.Reservation{
		ID: 1, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: day(2026, 3, 5), Time: "10:00", Status: domain.StatusCompleted,
	}
	resRepo.reservations[2] = &domain.Reservation{
		ID: 2, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: day(2026, 3, 12), Time: "11:00", Status: domain.StatusCompleted,
	}
	resRepo.reservations[3] = &domain.Reservation{
		ID: 3, ServiceID: ptr.Ptr(int64(1)), ServiceName: "Corte de pelo",
		Date: day(2026, 3, 20), Time: "12:00", Status: domain.StatusApproved,
	}

	result, err := svc.MonthlyRevenue(context.Background(), "2026-03")
	require.NoError(t, err)

	assert.Equal(t, "2026-03", result.Month)
	require.Len(t, result.Lines, 1)
	assert.Equal(t, 1000.0, result.Lines[0].Total)
	assert.Equal(t, 2, result.Lines[0].Count)
	assert.Equal(t, 1000.0, result.Total)
}

func TestReservations_MonthlyRevenue_InvalidMonth(t *testing.T) {
	svc, _, _ := setup()

	_, err := svc.MonthlyRevenue(context.Background(), "March 2026")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
