package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/carelinkhq/hospital-api/models"
)

// slots are spaced at a fixed half-hour grid
const slotIntervalMinutes = 30

// SlotsForDate expands a doctor's weekly availability into the discrete
// bookable HH:MM start times for one calendar date. A date whose weekday has
// no availability entry yields an empty list, not an error.
func SlotsForDate(available []models.AvailableSlot, date time.Time) []string {
	weekday := date.Weekday().String()
	for _, slot := range available {
		if strings.EqualFold(slot.Day, weekday) {
			return ExpandRange(slot.Time)
		}
	}
	return []string{}
}

// ExpandRange turns a free-text range like "10AM-2PM" into half-hour slot
// start times, e.g. ["10:00","10:30",...,"13:30"]. The boundary hours are
// read at hour-only granularity: all non-digit characters are stripped from
// each side, so minute-bearing input like "10:30AM" is read as hour 1030 and
// typically collapses the range to empty. Ranges must not cross midnight;
// start >= end yields an empty list.
func ExpandRange(timeRange string) []string {
	parts := strings.SplitN(timeRange, "-", 2)
	if len(parts) != 2 {
		return []string{}
	}
	start, okStart := parseHour(parts[0])
	end, okEnd := parseHour(parts[1])
	if !okStart || !okEnd || start >= end {
		return []string{}
	}
	slots := []string{}
	for m := start * 60; m < end*60; m += slotIntervalMinutes {
		slots = append(slots, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return slots
}

// parseHour extracts the hour from one side of a range ("10AM", "2pm") and
// normalizes it to a 24-hour clock.
func parseHour(s string) (int, bool) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return 0, false
	}
	hour := 0
	for _, r := range digits.String() {
		hour = hour*10 + int(r-'0')
	}
	lower := strings.ToLower(s)
	if strings.Contains(lower, "pm") && hour != 12 {
		hour += 12
	}
	if strings.Contains(lower, "am") && hour == 12 {
		hour = 0
	}
	return hour, true
}

// Contains reports whether slot is one of the resolved slots.
func Contains(slots []string, slot string) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
