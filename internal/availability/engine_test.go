package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mcenturion/turnos-api/internal/domain"
	"github.com/mcenturion/turnos-api/pkg/ptr"
	"github.com/mcenturion/turnos-api/pkg/types"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testServices() []*domain.Service {
	return []*domain.Service{
		{
			ID:             1,
			Name:           "Corte de pelo",
			AvailableDays:  []int{1, 2, 3, 4, 5},
			AvailableTimes: []types.TimeString{"10:00", "11:00", "12:00"},
		},
		{
			ID:   2,
			Name: "Manicura",
			// Пустые маски: работают дефолты
		},
	}
}

func TestResolveService(t *testing.T) {
	services := testServices()

	assert.Equal(t, int64(1), ResolveService(services, ptr.Ptr(int64(1)), "").ID)
	assert.Equal(t, int64(2), ResolveService(services, nil, "Manicura").ID)

	// id имеет приоритет над именем
	svc := ResolveService(services, ptr.Ptr(int64(2)), "Corte de pelo")
	assert.Equal(t, int64(2), svc.ID)

	// несуществующий id с совпадающим именем: fallback по имени
	svc = ResolveService(services, ptr.Ptr(int64(99)), "Corte de pelo")
	assert.Equal(t, int64(1), svc.ID)

	assert.Nil(t, ResolveService(services, nil, "Depilación"))
	assert.Nil(t, ResolveService(nil, ptr.Ptr(int64(1)), ""))
}

func TestBookedTimes_OnlyHeldStatusesCount(t *testing.T) {
	day := date(2026, 3, 16) // понедельник
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "10:00", Status: domain.StatusPending},
		{ID: 2, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "11:00", Status: domain.StatusApproved},
		{ID: 3, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "12:00", Status: domain.StatusRejected},
		{ID: 4, ServiceID: ptr.Ptr(int64(1)), Date: day.AddDate(0, 0, 1), Time: "10:00", Status: domain.StatusApproved},
	}

	booked := BookedTimes(reservations, day, ptr.Ptr(int64(1)), "Corte de pelo", nil)
	assert.Equal(t, []types.TimeString{"10:00", "11:00"}, booked)
}

func TestBookedTimes_DetachedReservationMatchesByName(t *testing.T) {
	day := date(2026, 3, 16)
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: nil, ServiceName: "Corte de pelo", Date: day, Time: "10:00", Status: domain.StatusPending},
		{ID: 2, ServiceID: nil, ServiceName: "Manicura", Date: day, Time: "11:00", Status: domain.StatusPending},
	}

	booked := BookedTimes(reservations, day, ptr.Ptr(int64(1)), "Corte de pelo", nil)
	assert.Equal(t, []types.TimeString{"10:00"}, booked)
}

func TestBookedTimes_ExcludeReservation(t *testing.T) {
	day := date(2026, 3, 16)
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "10:00", Status: domain.StatusApproved},
		{ID: 2, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "11:00", Status: domain.StatusApproved},
	}

	// При переносе бронь не должна блокироваться собственным слотом
	booked := BookedTimes(reservations, day, ptr.Ptr(int64(1)), "", ptr.Ptr(int64(1)))
	assert.Equal(t, []types.TimeString{"11:00"}, booked)
}

func TestAvailableSlots_TemplateMinusBooked(t *testing.T) {
	services := testServices()
	day := date(2026, 3, 16)
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "11:00", Status: domain.StatusPending},
	}

	free := AvailableSlots(reservations, services, day, ptr.Ptr(int64(1)), "", nil)
	assert.Equal(t, []types.TimeString{"10:00", "12:00"}, free)
}

func TestAvailableSlots_UnknownServiceUsesDefaultLadder(t *testing.T) {
	day := date(2026, 3, 16)

	free := AvailableSlots(nil, nil, day, nil, "Depilación", nil)
	assert.Len(t, free, 11)
	assert.Equal(t, types.TimeString("10:00"), free[0])
}

func TestAvailableSlots_FullyBookedDay(t *testing.T) {
	services := testServices()
	day := date(2026, 3, 16)
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "10:00", Status: domain.StatusApproved},
		{ID: 2, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "11:00", Status: domain.StatusApproved},
		{ID: 3, ServiceID: ptr.Ptr(int64(1)), Date: day, Time: "12:00", Status: domain.StatusPending},
	}

	free := AvailableSlots(reservations, services, day, ptr.Ptr(int64(1)), "", nil)
	assert.Empty(t, free)
}

func TestAvailableSlots_OtherServiceDoesNotBlock(t *testing.T) {
	services := testServices()
	day := date(2026, 3, 16)
	reservations := []*domain.Reservation{
		{ID: 1, ServiceID: ptr.Ptr(int64(2)), Date: day, Time: "10:00", Status: domain.StatusApproved},
	}

	free := AvailableSlots(reservations, services, day, ptr.Ptr(int64(1)), "", nil)
	assert.Equal(t, []types.TimeString{"10:00", "11:00", "12:00"}, free)
}

func TestIsDateSelectable(t *testing.T) {
	// 2026-03-16 - понедельник
	now := time.Date(2026, 3, 16, 18, 30, 0, 0, time.UTC)
	weekdays := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		date time.Time
		days []int
		want bool
	}{
		{name: "today is selectable regardless of clock", date: date(2026, 3, 16), days: weekdays, want: true},
		{name: "yesterday is past", date: date(2026, 3, 15), days: weekdays, want: false},
		{name: "tomorrow ok", date: date(2026, 3, 17), days: weekdays, want: true},
		{name: "saturday not in mask", date: date(2026, 3, 21), days: weekdays, want: false},
		{name: "sunday allowed when masked in", date: date(2026, 3, 22), days: []int{0}, want: true},
		{name: "empty mask selects nothing", date: date(2026, 3, 17), days: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateSelectable(tt.date, now, tt.days))
		})
	}
}

func TestIsDateSelectable_LocalServerTimezone(t *testing.T) {
	// Даты запросов парсятся в UTC, now приходит в локальной зоне сервера.
	// Граница "сегодня" определяется календарной датой, а не мгновением.
	montevideo := time.FixedZone("UYT", -3*60*60)
	tokyo := time.FixedZone("JST", 9*60*60)
	weekdays := []int{1, 2, 3, 4, 5}

	tests := []struct {
		name string
		date time.Time
		now  time.Time
		want bool
	}{
		{
			name: "today selectable in negative offset morning",
			date: date(2026, 3, 16),
			now:  time.Date(2026, 3, 16, 9, 0, 0, 0, montevideo),
			want: true,
		},
		{
			name: "today selectable in negative offset late evening",
			date: date(2026, 3, 16),
			now:  time.Date(2026, 3, 16, 23, 30, 0, 0, montevideo),
			want: true,
		},
		{
			name: "yesterday stays past in positive offset",
			date: date(2026, 3, 16),
			now:  time.Date(2026, 3, 17, 1, 0, 0, 0, tokyo),
			want: false,
		},
		{
			name: "tomorrow selectable in positive offset",
			date: date(2026, 3, 17),
			now:  time.Date(2026, 3, 16, 23, 0, 0, 0, tokyo),
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDateSelectable(tt.date, tt.now, weekdays))
		})
	}
}
