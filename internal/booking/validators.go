package booking

import (
	"regexp"
	"strings"

	"github.com/chatforge/booking-engine/internal/schedule"
)

// RejectReason classifies why a turn was rejected. All rejections are
// recoverable: the cursor stays put and the user is reprompted.
type RejectReason string

const (
	RejectEmpty          RejectReason = "empty"
	RejectMalformedEmail RejectReason = "malformed_email"
	RejectUnparsableTime RejectReason = "unparsable_time"
	RejectOutOfHours     RejectReason = "out_of_hours"
)

// Result is the outcome of validating one turn against one field.
type Result struct {
	Accepted bool
	// Value is the normalized value stored in the draft when accepted. The
	// time field always stores the canonical label, never the raw text.
	Value  string
	Reason RejectReason
}

func accept(value string) Result {
	return Result{Accepted: true, Value: value}
}

func reject(reason RejectReason) Result {
	return Result{Reason: reason}
}

// Permissive shape check: something@something.something. Full RFC validation
// is a non-goal for a chat surface.
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

type validator func(value string, hours schedule.Hours) Result

// validators is total over the field enum; Validate panics on a gap so a new
// field cannot ship without a rule.
var validators = map[Field]validator{
	FieldName:    requireNonEmpty,
	FieldEmail:   validateEmail,
	FieldPhone:   requireNonEmpty,
	FieldService: requireNonEmpty,
	FieldNotes:   acceptOptional,
	// Dates are accepted as literal ISO strings with no calendar check; the
	// form wizard is the surface that validates against a generated date list.
	FieldDate: requireNonEmpty,
	FieldTime: validateTime,
}

// Validate runs one user turn through the rule for the given field.
func Validate(f Field, value string, hours schedule.Hours) Result {
	v, ok := validators[f]
	if !ok {
		panic("booking: no validator for field " + f.String())
	}
	return v(value, hours)
}

func requireNonEmpty(value string, _ schedule.Hours) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return reject(RejectEmpty)
	}
	return accept(trimmed)
}

func acceptOptional(value string, _ schedule.Hours) Result {
	return accept(strings.TrimSpace(value))
}

func validateEmail(value string, _ schedule.Hours) Result {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return reject(RejectEmpty)
	}
	if !emailPattern.MatchString(trimmed) {
		return reject(RejectMalformedEmail)
	}
	return accept(trimmed)
}

func validateTime(value string, hours schedule.Hours) Result {
	minutes, err := schedule.ParseTimeToMinutes(value)
	if err != nil {
		return reject(RejectUnparsableTime)
	}
	openMin, closeMin, err := hours.Window()
	if err != nil {
		// A bot with a malformed window has no bookable times at all.
		return reject(RejectOutOfHours)
	}
	if minutes < openMin || minutes >= closeMin {
		return reject(RejectOutOfHours)
	}
	return accept(schedule.FormatMinutes(minutes))
}
