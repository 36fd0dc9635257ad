package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mcenturion/turnos-api/pkg/types"
)

func TestNormalizeDays(t *testing.T) {
	tests := []struct {
		name string
		raw  []int
		want []int
	}{
		{name: "valid mask unchanged", raw: []int{1, 3, 5}, want: []int{1, 3, 5}},
		{name: "out of range filtered", raw: []int{-1, 2, 7, 4}, want: []int{2, 4}},
		{name: "order and duplicates preserved", raw: []int{5, 1, 5}, want: []int{5, 1, 5}},
		{name: "empty falls back to default", raw: nil, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "all invalid falls back to default", raw: []int{8, -3}, want: []int{1, 2, 3, 4, 5, 6}},
		{name: "sunday is valid", raw: []int{0}, want: []int{0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDays(tt.raw))
		})
	}
}

func TestNormalizeDays_Idempotent(t *testing.T) {
	once := NormalizeDays([]int{9, 2, 6, -1})
	twice := NormalizeDays(once)
	assert.Equal(t, once, twice)
}

func TestNormalizeTimes(t *testing.T) {
	custom := []types.TimeString{"09:00", "09:30"}
	assert.Equal(t, custom, NormalizeTimes(custom))

	fallback := NormalizeTimes(nil)
	assert.Len(t, fallback, 11)
	assert.Equal(t, types.TimeString("10:00"), fallback[0])
	assert.Equal(t, types.TimeString("20:00"), fallback[10])
}

func TestDefaultAvailableTimes_HourlyLadder(t *testing.T) {
	times := DefaultAvailableTimes()
	want := []types.TimeString{
		"10:00", "11:00", "12:00", "13:00", "14:00",
		"15:00", "16:00", "17:00", "18:00", "19:00", "20:00",
	}
	assert.Equal(t, want, times)
}
