// Package availability is the slot-allocation engine: pure functions over a
// snapshot of services and reservations. It decides which time slots are
// bookable for a (service, date) pair and never touches storage itself.
package availability

import (
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
	"github.com/mcenturion/turnos-api/pkg/types"
)

// ResolveService находит услугу по id (приоритетно) или по имени.
// Поиск по имени нужен для отвязанных бронирований, у которых остался
// только денормализованный снимок названия. Возвращает nil, если не найдена.
func ResolveService(services []*domain.Service, serviceID *int64, serviceName string) *domain.Service {
	if serviceID != nil {
		for _, svc := range services {
			if svc.ID == *serviceID {
				return svc
			}
		}
	}
	for _, svc := range services {
		if svc.Name == serviceName {
			return svc
		}
	}
	return nil
}

// ServiceTimes returns the service's static time-of-day template in its
// configured order, falling back to the default hourly ladder when the
// service is unknown or has no explicit times. The date plays no role here.
func ServiceTimes(svc *domain.Service) []types.TimeString {
	if svc == nil {
		return domain.DefaultAvailableTimes()
	}
	return domain.NormalizeTimes(svc.AvailableTimes)
}

// ServiceDays returns the service's weekday mask, falling back to the
// default Monday-Saturday mask when unset or the service is unknown.
func ServiceDays(svc *domain.Service) []int {
	if svc == nil {
		return domain.DefaultAvailableDays()
	}
	return domain.NormalizeDays(svc.AvailableDays)
}

// BookedTimes returns the set of times held on the given date for the given
// service reference. A time is held by reservations with a slot-occupying
// status (pending or approved); rejected and completed reservations free
// the slot. excludeID lets the reschedule flow ignore the reservation's own
// hold so it is never blocked by itself.
func BookedTimes(
	reservations []*domain.Reservation,
	date time.Time,
	serviceID *int64,
	serviceName string,
	excludeID *int64,
) []types.TimeString {
	booked := make([]types.TimeString, 0)

	for _, r := range reservations {
		if !r.Status.OccupiesSlot() {
			continue
		}
		if !sameDay(r.Date, date) {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if !matchesServiceRef(r, serviceID, serviceName) {
			continue
		}
		booked = append(booked, r.Time)
	}

	return booked
}

// AvailableSlots returns the bookable times for (service, date): the
// service's time template minus the held times, preserving template order.
func AvailableSlots(
	reservations []*domain.Reservation,
	services []*domain.Service,
	date time.Time,
	serviceID *int64,
	serviceName string,
	excludeID *int64,
) []types.TimeString {
	svc := ResolveService(services, serviceID, serviceName)
	template := ServiceTimes(svc)

	booked := make(map[types.TimeString]struct{})
	for _, t := range BookedTimes(reservations, date, serviceID, serviceName, excludeID) {
		booked[t] = struct{}{}
	}

	free := make([]types.TimeString, 0, len(template))
	for _, t := range template {
		if _, taken := booked[t]; !taken {
			free = append(free, t)
		}
	}

	return free
}

// IsDateSelectable reports whether a calendar date may be offered at all:
// not in the past (date-only comparison, selectable from local midnight of
// today) and its weekday is in the allowed mask. A fully booked but
// otherwise eligible day is still selectable; the emptiness shows up one
// step later at time selection.
func IsDateSelectable(date time.Time, now time.Time, allowedDays []int) bool {
	if beforeDay(date, now) {
		return false
	}

	weekday := int(date.Weekday())
	for _, day := range allowedDays {
		if day == weekday {
			return true
		}
	}
	return false
}

// matchesServiceRef сверяет бронирование со ссылкой на услугу.
// Приоритет у id; для отвязанных бронирований (ServiceID == nil)
// сравниваем по снимку названия.
func matchesServiceRef(r *domain.Reservation, serviceID *int64, serviceName string) bool {
	if r.ServiceID != nil {
		return serviceID != nil && *r.ServiceID == *serviceID
	}
	return r.ServiceName != "" && r.ServiceName == serviceName
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// beforeDay сравнивает только календарные компоненты (год, месяц, день)
// каждого значения в его собственной локации. Даты запросов парсятся в UTC,
// а now приходит в локальном времени сервера; сравнение мгновений здесь
// сдвигало бы границу "сегодня" на величину смещения зоны.
func beforeDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	if y1 != y2 {
		return y1 < y2
	}
	if m1 != m2 {
		return m1 < m2
	}
	return d1 < d2
}
