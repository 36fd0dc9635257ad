package availability

import (
	"sort"
	"time"

	"github.com/mcenturion/turnos-api/internal/domain"
)

// RevenueLine is one service's share of a month's completed revenue
type RevenueLine struct {
	ServiceName string
	Total       float64
	Count       int
}

// MonthlyRevenue aggregates revenue for the month containing month's date:
// completed reservations only, price resolved through the service id first,
// then by the denormalized name snapshot, defaulting to 0 when neither
// resolves. Lines are grouped by resolved service name and sorted by name.
func MonthlyRevenue(
	reservations []*domain.Reservation,
	services []*domain.Service,
	month time.Time,
) []RevenueLine {
	totals := make(map[string]*RevenueLine)

	for _, r := range reservations {
		if r.Status != domain.StatusCompleted {
			continue
		}
		if r.Date.Year() != month.Year() || r.Date.Month() != month.Month() {
			continue
		}

		svc := ResolveService(services, r.ServiceID, r.ServiceName)

		name := r.ServiceName
		price := 0.0
		if svc != nil {
			name = svc.Name
			price = svc.Price
		}

		line, ok := totals[name]
		if !ok {
			line = &RevenueLine{ServiceName: name}
			totals[name] = line
		}
		line.Total += price
		line.Count++
	}

	lines := make([]RevenueLine, 0, len(totals))
	for _, line := range totals {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].ServiceName < lines[j].ServiceName
	})

	return lines
}
