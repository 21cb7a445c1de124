package appointments

import "errors"

var (
	// ErrMissingBotID is returned when the owning bot is not identified
	ErrMissingBotID = errors.New("bot_id is required")

	// ErrMissingName is returned when the customer name is missing
	ErrMissingName = errors.New("name is required")

	// ErrMissingEmail is returned when the customer email is missing
	ErrMissingEmail = errors.New("email is required")

	// ErrMissingService is returned when no service was selected
	ErrMissingService = errors.New("service is required")

	// ErrMissingSchedule is returned when date or time is missing
	ErrMissingSchedule = errors.New("date and time are required")

	// ErrInvalidStatus is returned on an unknown lifecycle status
	ErrInvalidStatus = errors.New("invalid appointment status")

	// ErrNotFound is returned when an appointment does not exist
	ErrNotFound = errors.New("appointment not found")
)
