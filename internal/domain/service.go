package domain

import (
	"time"

	"github.com/mcenturion/turnos-api/pkg/types"
)

// Service represents an offered service with its availability mask
type Service struct {
	ID       int64
	Name     string
	Duration string  // display label, e.g. "45 min"
	Price    float64 // display-only; feeds revenue statistics

	// AvailableDays holds weekday indices (0=Sunday..6=Saturday).
	// AvailableTimes is the ordered universe of bookable HH:MM slots;
	// admin edits may reorder it, the order is preserved as configured.
	AvailableDays  []int
	AvailableTimes []types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceUpdate describes a partial update of a service.
// Nil fields are left untouched.
type ServiceUpdate struct {
	Name           *string
	Duration       *string
	Price          *float64
	AvailableDays  *[]int
	AvailableTimes *[]types.TimeString
}

// IsEmpty returns true if the update changes nothing
func (u *ServiceUpdate) IsEmpty() bool {
	return u.Name == nil && u.Duration == nil && u.Price == nil &&
		u.AvailableDays == nil && u.AvailableTimes == nil
}
