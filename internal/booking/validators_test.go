package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatforge/booking-engine/internal/schedule"
)

var testHours = schedule.Hours{Open: "09:00", Close: "17:00", TimezoneLabel: "America/New_York"}

func TestValidateRequiredFields(t *testing.T) {
	for _, f := range []Field{FieldName, FieldPhone, FieldService, FieldDate} {
		t.Run(f.String(), func(t *testing.T) {
			res := Validate(f, "   ", testHours)
			assert.False(t, res.Accepted)
			assert.Equal(t, RejectEmpty, res.Reason)

			res = Validate(f, "  something  ", testHours)
			assert.True(t, res.Accepted)
			assert.Equal(t, "something", res.Value, "accepted values are trimmed")
		})
	}
}

func TestValidateNotesOptional(t *testing.T) {
	res := Validate(FieldNotes, "", testHours)
	assert.True(t, res.Accepted)
	assert.Equal(t, "", res.Value)

	res = Validate(FieldNotes, "  please park in back  ", testHours)
	assert.True(t, res.Accepted)
	assert.Equal(t, "please park in back", res.Value)
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		input  string
		ok     bool
		reason RejectReason
	}{
		{"jane@example.com", true, ""},
		{" jane.doe+tag@sub.example.co ", true, ""},
		{"", false, RejectEmpty},
		{"not-an-email", false, RejectMalformedEmail},
		{"missing@dot", false, RejectMalformedEmail},
		{"@example.com", false, RejectMalformedEmail},
		{"two words@example.com", false, RejectMalformedEmail},
	}
	for _, tt := range tests {
		res := Validate(FieldEmail, tt.input, testHours)
		assert.Equal(t, tt.ok, res.Accepted, "input %q", tt.input)
		if !tt.ok {
			assert.Equal(t, tt.reason, res.Reason, "input %q", tt.input)
		}
	}
}

func TestValidateTime(t *testing.T) {
	res := Validate(FieldTime, "7:00 AM", testHours)
	assert.False(t, res.Accepted)
	assert.Equal(t, RejectOutOfHours, res.Reason)

	res = Validate(FieldTime, "3:00 PM", testHours)
	assert.True(t, res.Accepted)
	assert.Equal(t, "3:00 PM", res.Value)

	// Normalization: the draft stores the canonical label, not the raw text.
	res = Validate(FieldTime, "3pm", testHours)
	assert.True(t, res.Accepted)
	assert.Equal(t, "3:00 PM", res.Value)

	res = Validate(FieldTime, "sometime in the afternoon", testHours)
	assert.False(t, res.Accepted)
	assert.Equal(t, RejectUnparsableTime, res.Reason)

	// The close bound is exclusive; the open bound is inclusive.
	res = Validate(FieldTime, "5:00 PM", testHours)
	assert.False(t, res.Accepted)
	assert.Equal(t, RejectOutOfHours, res.Reason)

	res = Validate(FieldTime, "9:00 AM", testHours)
	assert.True(t, res.Accepted)
}

func TestValidateTimeMalformedWindow(t *testing.T) {
	broken := schedule.Hours{Open: "whenever", Close: "17:00"}
	res := Validate(FieldTime, "3pm", broken)
	assert.False(t, res.Accepted)
	assert.Equal(t, RejectOutOfHours, res.Reason)
}

func TestValidatorsTotalOverFieldOrder(t *testing.T) {
	for _, f := range FieldOrder() {
		assert.NotPanics(t, func() { Validate(f, "x", testHours) }, "field %s", f)
	}
}
