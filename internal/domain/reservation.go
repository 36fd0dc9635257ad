package domain

import (
	"time"

	"github.com/mcenturion/turnos-api/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "pending"
	StatusApproved  ReservationStatus = "approved"
	StatusRejected  ReservationStatus = "rejected"
	StatusCompleted ReservationStatus = "completed"
)

// AllStatuses is the closed set of recognized reservation statuses
var AllStatuses = []ReservationStatus{
	StatusPending,
	StatusApproved,
	StatusRejected,
	StatusCompleted,
}

// IsValid returns true if the status is one of the recognized values
func (s ReservationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal returns true if no further transitions are allowed from the status
func (s ReservationStatus) IsTerminal() bool {
	return s == StatusRejected || s == StatusCompleted
}

// OccupiesSlot returns true if a reservation with this status holds its time slot.
// Pending reservations hold the slot provisionally until an admin acts on them.
func (s ReservationStatus) OccupiesSlot() bool {
	return s == StatusPending || s == StatusApproved
}

// CanTransitionTo reports whether a transition from s to next is legal:
// pending -> approved | rejected, approved -> completed | rejected.
// Rejected and completed are terminal.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	switch s {
	case StatusPending:
		return next == StatusApproved || next == StatusRejected
	case StatusApproved:
		return next == StatusCompleted || next == StatusRejected
	default:
		return false
	}
}

// Reservation represents a booked appointment slot
type Reservation struct {
	ID       int64
	Code     string // human-shareable code, e.g. RES-m2k3f8a1-x9q2
	Name     string
	Whatsapp string

	// ServiceID is nil after the referenced service has been deleted (detachment).
	// ServiceName is a point-in-time snapshot taken at creation, kept for history.
	ServiceID   *int64
	ServiceName string

	Date   time.Time // wall-clock calendar date, no timezone semantics
	Time   types.TimeString
	Status ReservationStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// MatchesService reports whether the reservation belongs to the given service.
// The id reference is preferred; detached reservations fall back to the
// denormalized name snapshot.
func (r *Reservation) MatchesService(svc *Service) bool {
	if svc == nil {
		return false
	}
	if r.ServiceID != nil {
		return *r.ServiceID == svc.ID
	}
	return r.ServiceName == svc.Name
}

// ReservationsFilter defines optional filters for listing reservations
type ReservationsFilter struct {
	Date      *time.Time         // exact date match
	StartDate *time.Time         // range start, inclusive
	EndDate   *time.Time         // range end, exclusive (month queries)
	Status    *ReservationStatus // filter by status
	ServiceID *int64             // filter by service reference
	OnlyHeld  bool               // only statuses that occupy a slot (pending, approved)
}
