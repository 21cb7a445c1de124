package appointments

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/chatforge/booking-engine/internal/booking"
	"github.com/chatforge/booking-engine/pkg/logging"
)

var appointmentsTracer = otel.Tracer("chatforge.internal.appointments")

// Service owns appointment writes. It implements booking.AppointmentCreator
// so the conversational engine can commit completed drafts.
type Service struct {
	repo   Repository
	logger *logging.Logger
}

// NewService constructs an appointments service.
func NewService(repo Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// CreateAppointment persists a completed conversational booking. The bot's
// timezone label is folded into the notes for audit, since dates and times
// are stored as labels, not converted instants.
func (s *Service) CreateAppointment(ctx context.Context, completed booking.CompletedBooking) (string, error) {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.create")
	defer span.End()
	span.SetAttributes(
		attribute.String("chatforge.bot_id", completed.BotID),
		attribute.String("chatforge.service", completed.Service),
	)

	req := &CreateAppointmentRequest{
		BotID:   completed.BotID,
		Name:    completed.Name,
		Email:   completed.Email,
		Phone:   completed.Phone,
		Service: completed.Service,
		Date:    completed.Date,
		Time:    completed.Time,
		Notes:   notesWithTimezone(completed.Notes, completed.TimezoneLabel),
	}

	appt, err := s.repo.Create(ctx, req)
	if err != nil {
		span.RecordError(err)
		return "", fmt.Errorf("appointments: create from booking: %w", err)
	}

	s.logger.Info("appointment created",
		"appointment_id", appt.ID,
		"bot_id", appt.BotID,
		"service", appt.Service,
		"date", appt.Date,
		"time", appt.Time,
	)
	return appt.ID, nil
}

// UpdateStatus transitions an appointment's lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, botID, id string, status Status) error {
	ctx, span := appointmentsTracer.Start(ctx, "appointments.update_status")
	defer span.End()
	span.SetAttributes(
		attribute.String("chatforge.bot_id", botID),
		attribute.String("chatforge.status", string(status)),
	)

	if err := s.repo.UpdateStatus(ctx, botID, id, status); err != nil {
		span.RecordError(err)
		return err
	}
	s.logger.Info("appointment status updated", "appointment_id", id, "bot_id", botID, "status", status)
	return nil
}

func notesWithTimezone(notes, tz string) string {
	if tz == "" {
		return notes
	}
	if strings.TrimSpace(notes) == "" {
		return fmt.Sprintf("Timezone: %s", tz)
	}
	return fmt.Sprintf("%s\nTimezone: %s", notes, tz)
}
