package get_selectable_days

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcenturion/turnos-api/internal/domain"
	"github.com/mcenturion/turnos-api/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fakeServiceRepo struct {
	services []*domain.Service
}

func (r *fakeServiceRepo) List(ctx context.Context) ([]*domain.Service, error) {
	return r.services, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p fixedTimeProvider) Now() time.Time {
	return p.now
}

func setup(now time.Time) *UseCase {
	svcRepo := &fakeServiceRepo{
		services: []*domain.Service{
			{ID: 1, Name: "Corte de pelo", AvailableDays: []int{6}}, // только суббота
		},
	}
	return NewUseCase(svcRepo, fixedTimeProvider{now: now}, nopLogger{})
}

func TestGetSelectableDays_WeekdayMaskAndPastCutoff(t *testing.T) {
	// середина марта: прошедшие субботы отсекаются
	uc := setup(time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: ptr.Ptr(int64(1)),
		Month:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Субботы марта 2026: 7, 14, 21, 28; прошлые (7, 14) отсечены
	require.Len(t, resp.Days, 2)
	assert.Equal(t, 21, resp.Days[0].Day())
	assert.Equal(t, 28, resp.Days[1].Day())
}

func TestGetSelectableDays_FutureMonthFull(t *testing.T) {
	uc := setup(time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceID: ptr.Ptr(int64(1)),
		Month:     time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Субботы апреля 2026: 4, 11, 18, 25
	assert.Len(t, resp.Days, 4)
}

func TestGetSelectableDays_UnknownServiceID(t *testing.T) {
	uc := setup(time.Date(2026, 3, 16, 12, 0, 0, 0, time.UTC))

	_, err := uc.Execute(context.Background(), &Request{
		ServiceID: ptr.Ptr(int64(99)),
		Month:     time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestGetSelectableDays_UnknownNameUsesDefaultMask(t *testing.T) {
	uc := setup(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))

	resp, err := uc.Execute(context.Background(), &Request{
		ServiceName: "Peinado",
		Month:       time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Апрель 2026: 30 дней, из них 4 воскресенья; дефолтная маска Пн-Сб
	assert.Len(t, resp.Days, 26)
}
