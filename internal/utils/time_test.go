package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDayAt(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	tests := []struct {
		name     string
		in       time.Time
		hour     int
		expected time.Time
	}{
		{
			name:     "late evening rolls to next morning",
			in:       time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC),
			hour:     7,
			expected: time.Date(2024, 1, 11, 7, 0, 0, 0, time.UTC),
		},
		{
			name:     "early morning still rolls to the next calendar day",
			in:       time.Date(2024, 1, 10, 1, 0, 0, 0, time.UTC),
			hour:     7,
			expected: time.Date(2024, 1, 11, 7, 0, 0, 0, time.UTC),
		},
		{
			name:     "month boundary",
			in:       time.Date(2024, 1, 31, 23, 59, 0, 0, time.UTC),
			hour:     8,
			expected: time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "leap day",
			in:       time.Date(2024, 2, 28, 12, 0, 0, 0, time.UTC),
			hour:     8,
			expected: time.Date(2024, 2, 29, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "keeps the source location",
			in:       time.Date(2024, 6, 1, 20, 0, 0, 0, loc),
			hour:     7,
			expected: time.Date(2024, 6, 2, 7, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDayAt(tt.in, tt.hour)
			assert.True(t, got.Equal(tt.expected), "got %v, want %v", got, tt.expected)
			assert.Equal(t, tt.in.Location(), got.Location())
		})
	}
}

func TestDeactivationCutoffs(t *testing.T) {
	activatedAt := time.Date(2024, 1, 10, 22, 0, 0, 0, time.UTC)

	manual := ManualDeactivationCutoff(activatedAt)
	sweep := SweepDeactivationCutoff(activatedAt)

	assert.Equal(t, time.Date(2024, 1, 11, 7, 0, 0, 0, time.UTC), manual)
	assert.Equal(t, time.Date(2024, 1, 11, 8, 0, 0, 0, time.UTC), sweep)
	assert.Equal(t, time.Hour, sweep.Sub(manual), "sweep trails the manual cutoff by one hour")
}

func TestStartAndEndOfDay(t *testing.T) {
	in := time.Date(2024, 5, 17, 13, 45, 12, 999, time.UTC)

	assert.Equal(t, time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC), StartOfDay(in))
	assert.Equal(t, time.Date(2024, 5, 17, 23, 59, 59, 999999999, time.UTC), EndOfDay(in))
}
