package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/carelinkhq/hospital-api/api/handlers/schedule"
	"github.com/carelinkhq/hospital-api/models"
)

func TestSlotsForDateMonday(t *testing.T) {
	available := []models.AvailableSlot{
		{Day: "Monday", Time: "10AM-2PM"},
	}
	// 2026-09-07 is a Monday
	monday := time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

	slots := schedule.SlotsForDate(available, monday)

	assert.Equal(t, []string{
		"10:00", "10:30", "11:00", "11:30",
		"12:00", "12:30", "13:00", "13:30",
	}, slots)
}

func TestSlotsForDateNoEntryForWeekday(t *testing.T) {
	available := []models.AvailableSlot{
		{Day: "Monday", Time: "10AM-2PM"},
	}
	// 2026-09-08 is a Tuesday
	tuesday := time.Date(2026, time.September, 8, 0, 0, 0, 0, time.UTC)

	slots := schedule.SlotsForDate(available, tuesday)

	assert.Equal(t, []string{}, slots)
}

func TestSlotsForDateDayNameCaseInsensitive(t *testing.T) {
	available := []models.AvailableSlot{
		{Day: "friday", Time: "9AM-10AM"},
	}
	// 2026-09-11 is a Friday
	friday := time.Date(2026, time.September, 11, 0, 0, 0, 0, time.UTC)

	slots := schedule.SlotsForDate(available, friday)

	assert.Equal(t, []string{"09:00", "09:30"}, slots)
}

func TestExpandRange(t *testing.T) {
	tests := []struct {
		name      string
		timeRange string
		expected  []string
	}{
		{
			name:      "morning to afternoon",
			timeRange: "10AM-2PM",
			expected:  []string{"10:00", "10:30", "11:00", "11:30", "12:00", "12:30", "13:00", "13:30"},
		},
		{
			name:      "lowercase markers",
			timeRange: "9am-11am",
			expected:  []string{"09:00", "09:30", "10:00", "10:30"},
		},
		{
			name:      "afternoon only",
			timeRange: "2PM-4PM",
			expected:  []string{"14:00", "14:30", "15:00", "15:30"},
		},
		{
			name:      "noon start stays 12",
			timeRange: "12PM-1PM",
			expected:  []string{"12:00", "12:30"},
		},
		{
			name:      "midnight start",
			timeRange: "12AM-1AM",
			expected:  []string{"00:00", "00:30"},
		},
		{
			name:      "start equals end",
			timeRange: "10AM-10AM",
			expected:  []string{},
		},
		{
			name:      "start after end",
			timeRange: "2PM-10AM",
			expected:  []string{},
		},
		{
			name:      "malformed range",
			timeRange: "10AM",
			expected:  []string{},
		},
		{
			// minute-granularity boundaries are read hour-only: the digit
			// strip turns "10:30AM" into hour 1030, which exceeds the end
			// hour and collapses the range
			name:      "minute granularity collapses",
			timeRange: "10:30AM-2PM",
			expected:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, schedule.ExpandRange(tt.timeRange))
		})
	}
}

func TestContains(t *testing.T) {
	slots := []string{"10:00", "10:30"}
	assert.True(t, schedule.Contains(slots, "10:30"))
	assert.False(t, schedule.Contains(slots, "11:00"))
}
