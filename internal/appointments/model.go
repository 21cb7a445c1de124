package appointments

import (
	"strings"
	"time"
)

// Status is the appointment lifecycle state. New appointments always start
// pending; transitions are driven by clinic staff through the admin surface,
// never by the booking engine.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Appointment is the persisted booking record, keyed by bot.
type Appointment struct {
	ID        string    `json:"id"`
	BotID     string    `json:"bot_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Service   string    `json:"service"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Status    Status    `json:"status"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAppointmentRequest carries a new appointment into the repository.
type CreateAppointmentRequest struct {
	BotID   string `json:"bot_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Notes   string `json:"notes"`
}

// Validate checks the request's required fields.
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.BotID) == "" {
		return ErrMissingBotID
	}
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Email) == "" {
		return ErrMissingEmail
	}
	if strings.TrimSpace(r.Service) == "" {
		return ErrMissingService
	}
	if strings.TrimSpace(r.Date) == "" || strings.TrimSpace(r.Time) == "" {
		return ErrMissingSchedule
	}
	return nil
}
