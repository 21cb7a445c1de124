package booking

import (
	"context"
	"time"
)

// CompletedBooking carries everything collected over the conversation once
// the final field is accepted. Time is the canonical human label (e.g.
// "3:00 PM"); Date is the literal string the user supplied.
type CompletedBooking struct {
	BotID         string
	Name          string
	Email         string
	Phone         string
	Service       string
	Date          string
	Time          string
	Notes         string
	TimezoneLabel string
	CollectedAt   time.Time
}

// AppointmentCreator commits a completed draft to the appointment store.
// Implementations own the Appointment record; the engine never reads it back.
type AppointmentCreator interface {
	CreateAppointment(ctx context.Context, completed CompletedBooking) (string, error)
}
