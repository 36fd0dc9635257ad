package domain

import (
	"fmt"

	"github.com/mcenturion/turnos-api/pkg/types"
)

// DefaultAvailableDays returns the default weekday mask: Monday through
// Saturday, Sunday excluded.
func DefaultAvailableDays() []int {
	return []int{1, 2, 3, 4, 5, 6}
}

// DefaultAvailableTimes returns the default hourly slot ladder,
// 10:00 through 20:00 inclusive (11 slots).
func DefaultAvailableTimes() []types.TimeString {
	times := make([]types.TimeString, 0, defaultLastHour-defaultFirstHour+1)
	for hour := defaultFirstHour; hour <= defaultLastHour; hour++ {
		times = append(times, types.TimeString(fmt.Sprintf("%02d:00", hour)))
	}
	return times
}

// NormalizeDays filters raw to weekday indices in [0,6], preserving input
// order (duplicates are kept). An empty result falls back to the default
// Monday-Saturday mask. Idempotent: normalizing an already valid mask
// returns the same elements.
func NormalizeDays(raw []int) []int {
	normalized := make([]int, 0, len(raw))
	for _, day := range raw {
		if day >= 0 && day <= 6 {
			normalized = append(normalized, day)
		}
	}
	if len(normalized) == 0 {
		return DefaultAvailableDays()
	}
	return normalized
}

// NormalizeTimes passes through a non-empty time set unchanged (the
// configured order is the display and booking order) and falls back to
// the default hourly ladder when empty.
func NormalizeTimes(raw []types.TimeString) []types.TimeString {
	if len(raw) == 0 {
		return DefaultAvailableTimes()
	}
	return raw
}
