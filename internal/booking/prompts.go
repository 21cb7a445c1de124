package booking

import (
	"fmt"
	"strings"

	"github.com/chatforge/booking-engine/internal/schedule"
)

// NextPrompt returns the question for a field. Time prompts embed the
// currently configured window rather than a hard-coded one.
func NextPrompt(f Field, hours schedule.Hours) string {
	switch f {
	case FieldName:
		return "What's your full name?"
	case FieldEmail:
		return "What's your email address?"
	case FieldPhone:
		return "What's the best phone number to reach you?"
	case FieldDate:
		return "What date would you like to come in? Please use YYYY-MM-DD."
	case FieldTime:
		open, close := windowLabels(hours)
		return fmt.Sprintf("What time works for you? We're open between %s and %s.", open, close)
	case FieldService:
		return "Which service would you like to book?"
	case FieldNotes:
		return "Anything else we should know? You can also just say \"no\" or leave this empty."
	}
	return "Could you tell me a bit more?"
}

// maxExampleSlots caps how many available times a reprompt lists.
const maxExampleSlots = 5

// Reprompt returns the remediation message after a rejected turn. For the
// time field it lists available example slots when any are known.
func Reprompt(f Field, hours schedule.Hours, reason RejectReason, examples []schedule.Slot) string {
	switch f {
	case FieldName:
		return "I didn't catch that. What's your full name?"
	case FieldEmail:
		if reason == RejectEmpty {
			return "I still need your email address to confirm the booking."
		}
		return "That doesn't look like an email address. Could you double-check it? (e.g. jane@example.com)"
	case FieldPhone:
		return "I didn't catch a phone number. What's the best number to reach you?"
	case FieldDate:
		return "I didn't catch a date. Please send it as YYYY-MM-DD."
	case FieldTime:
		return timeReprompt(hours, reason, examples)
	case FieldService:
		return "Which service should I book for you?"
	case FieldNotes:
		return "Anything else we should know?"
	}
	return "Sorry, could you try that again?"
}

func timeReprompt(hours schedule.Hours, reason RejectReason, examples []schedule.Slot) string {
	var b strings.Builder
	if reason == RejectOutOfHours {
		open, close := windowLabels(hours)
		fmt.Fprintf(&b, "We're only open between %s and %s.", open, close)
	} else {
		b.WriteString("I couldn't understand that time. Try something like \"10am\" or \"2:30 pm\".")
	}

	if len(examples) > 0 {
		if len(examples) > maxExampleSlots {
			examples = examples[:maxExampleSlots]
		}
		labels := make([]string, len(examples))
		for i, s := range examples {
			labels[i] = s.Label
		}
		fmt.Fprintf(&b, " Available times include: %s.", strings.Join(labels, ", "))
	}
	return b.String()
}

func windowLabels(hours schedule.Hours) (string, string) {
	openMin, closeMin, err := hours.Window()
	if err != nil {
		return hours.Open, hours.Close
	}
	return schedule.FormatMinutes(openMin), schedule.FormatMinutes(closeMin)
}
