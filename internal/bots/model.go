// Package bots reads per-bot booking configuration. The engine consumes it
// read-only; bot CRUD lives in the platform's dashboard service.
package bots

import (
	"errors"
	"time"

	"github.com/chatforge/booking-engine/internal/schedule"
)

// ErrBotNotFound is returned when a bot does not exist
var ErrBotNotFound = errors.New("bot not found")

// Bot is the subset of bot configuration the booking engine needs.
type Bot struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Hours           schedule.Hours `json:"hours"`
	SlotStepMinutes int            `json:"slot_step_minutes"`
	CreatedAt       time.Time      `json:"created_at"`
}
