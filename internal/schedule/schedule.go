// Package schedule holds the time arithmetic shared by the conversational
// booking engine and the form-based booking surfaces: clock parsing, slot
// generation from business hours, and same-day availability filtering.
package schedule

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnparsableTime is returned when a free-text time cannot be understood.
var ErrUnparsableTime = errors.New("schedule: unparsable time")

const minutesPerDay = 24 * 60

// Hours is the booking window configured per bot. Open and Close are
// "HH:MM" clock strings; TimezoneLabel is stored verbatim, never used for
// conversion.
type Hours struct {
	Open          string `json:"open_time"`
	Close         string `json:"close_time"`
	TimezoneLabel string `json:"timezone_label"`
}

// Window returns the open/close bounds as minutes since midnight.
func (h Hours) Window() (openMin, closeMin int, err error) {
	openMin, err = ParseTimeToMinutes(h.Open)
	if err != nil {
		return 0, 0, fmt.Errorf("schedule: bad open time %q: %w", h.Open, err)
	}
	closeMin, err = ParseTimeToMinutes(h.Close)
	if err != nil {
		return 0, 0, fmt.Errorf("schedule: bad close time %q: %w", h.Close, err)
	}
	return openMin, closeMin, nil
}

// Slot is a bookable start time. Slots are generated on demand and never
// persisted.
type Slot struct {
	Label   string `json:"label"`
	Minutes int    `json:"minutes"`
}

// timePattern accepts "H", "H:MM", and either followed by am/pm.
var timePattern = regexp.MustCompile(`^\s*(\d{1,2})(?::([0-9]{2}))?\s*([ap]m)?\s*$`)

// ParseTimeToMinutes converts free-text input like "3pm", "15:00" or "9:30 AM"
// into minutes since midnight. Without a meridiem the hour is read as 24-hour
// time. Hour 12 follows standard 12-hour clock semantics: "12am" is midnight,
// "12pm" is noon.
func ParseTimeToMinutes(input string) (int, error) {
	m := timePattern.FindStringSubmatch(strings.ToLower(input))
	if m == nil {
		return 0, ErrUnparsableTime
	}

	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if minute > 59 {
		return 0, ErrUnparsableTime
	}

	switch m[3] {
	case "am":
		if hour < 1 || hour > 12 {
			return 0, ErrUnparsableTime
		}
		if hour == 12 {
			hour = 0
		}
	case "pm":
		if hour < 1 || hour > 12 {
			return 0, ErrUnparsableTime
		}
		if hour != 12 {
			hour += 12
		}
	default:
		if hour > 23 {
			return 0, ErrUnparsableTime
		}
	}

	return hour*60 + minute, nil
}

// FormatMinutes renders minutes since midnight as a 12-hour "H:MM AM/PM"
// label. 0 renders as "12:00 AM" and 720 as "12:00 PM".
func FormatMinutes(total int) string {
	total = ((total % minutesPerDay) + minutesPerDay) % minutesPerDay
	hour := total / 60
	minute := total % 60

	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem)
}

// DefaultSlotStepMinutes is the spacing between generated slots.
const DefaultSlotStepMinutes = 30

// GenerateSlots produces the ordered bookable slots between open and close at
// the given step. An inverted or malformed window yields no slots rather than
// an error: a bot configured that way simply has nothing bookable.
func GenerateSlots(open, close string, step int) []Slot {
	openMin, err := ParseTimeToMinutes(open)
	if err != nil {
		return nil
	}
	closeMin, err := ParseTimeToMinutes(close)
	if err != nil {
		return nil
	}
	if step <= 0 || closeMin <= openMin {
		return nil
	}

	slots := make([]Slot, 0, (closeMin-openMin)/step)
	for m := openMin; m < closeMin; m += step {
		slots = append(slots, Slot{Label: FormatMinutes(m), Minutes: m})
	}
	return slots
}

// Slots generates this window's slots at the given step.
func (h Hours) Slots(step int) []Slot {
	return GenerateSlots(h.Open, h.Close, step)
}
