package schedule

import (
	"strings"
	"time"
)

// DefaultBufferMinutes is the minimum lead time enforced for same-day
// bookings.
const DefaultBufferMinutes = 60

// DateLayout is the ISO date format accepted for booking dates.
const DateLayout = "2006-01-02"

// FilterFutureSlots drops slots a customer can no longer book. Future dates
// keep every slot; past dates keep none; today keeps only slots beyond
// now+buffer. A candidate date that does not parse as ISO is left unfiltered,
// since the conversational path accepts dates without calendar validation.
func FilterFutureSlots(slots []Slot, candidateDate string, now time.Time, bufferMinutes int) []Slot {
	day, err := time.ParseInLocation(DateLayout, strings.TrimSpace(candidateDate), now.Location())
	if err != nil {
		return slots
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.After(today):
		return slots
	case day.Before(today):
		return []Slot{}
	}

	cutoff := now.Hour()*60 + now.Minute() + bufferMinutes
	remaining := make([]Slot, 0, len(slots))
	for _, s := range slots {
		if s.Minutes > cutoff {
			remaining = append(remaining, s)
		}
	}
	return remaining
}
