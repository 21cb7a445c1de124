package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/chatforge/booking-engine/internal/observability/metrics"
	"github.com/chatforge/booking-engine/internal/schedule"
	"github.com/chatforge/booking-engine/pkg/logging"
)

// State tags the dialogue state machine.
type State string

const (
	StateNotStarted State = "not_started"
	StateAwaiting   State = "awaiting_field"
	StateCompleted  State = "completed"
	StateAbandoned  State = "abandoned"
)

// DialogueState is the per-session state of one booking conversation. It is
// mutated only by the engine, one turn at a time; the chat surface serializes
// turns per session.
type DialogueState struct {
	State  State          `json:"state"`
	BotID  string         `json:"bot_id"`
	Cursor int            `json:"cursor"`
	Draft  Draft          `json:"draft"`
	Hours  schedule.Hours `json:"hours"`
}

// NewDialogueState returns a fresh, inactive state.
func NewDialogueState() *DialogueState {
	return &DialogueState{State: StateNotStarted, Draft: NewDraft()}
}

// Active reports whether the conversation is mid-flow.
func (s *DialogueState) Active() bool {
	return s != nil && s.State == StateAwaiting
}

// Engine drives the ordered slot-filling conversation. It is stateless across
// sessions: all per-conversation state lives in DialogueState.
type Engine struct {
	creator       AppointmentCreator
	logger        *logging.Logger
	metrics       *metrics.BookingMetrics
	now           func() time.Time
	stepMinutes   int
	bufferMinutes int
}

// Option customizes engine construction.
type Option func(*Engine)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithSlotStep sets the spacing of generated example slots.
func WithSlotStep(minutes int) Option {
	return func(e *Engine) { e.stepMinutes = minutes }
}

// WithBuffer sets the same-day minimum lead time.
func WithBuffer(minutes int) Option {
	return func(e *Engine) { e.bufferMinutes = minutes }
}

// WithMetrics attaches booking metrics.
func WithMetrics(m *metrics.BookingMetrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// NewEngine constructs the booking engine.
func NewEngine(creator AppointmentCreator, logger *logging.Logger, opts ...Option) *Engine {
	if creator == nil {
		panic("booking: appointment creator required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	e := &Engine{
		creator:       creator,
		logger:        logger,
		now:           time.Now,
		stepMinutes:   schedule.DefaultSlotStepMinutes,
		bufferMinutes: schedule.DefaultBufferMinutes,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start begins (or restarts) a booking conversation for a bot. Whatever the
// previous state was, it is reset and the first question is returned.
func (e *Engine) Start(state *DialogueState, botID string, hours schedule.Hours) string {
	state.State = StateAwaiting
	state.BotID = botID
	state.Cursor = 0
	state.Draft = NewDraft()
	state.Hours = hours

	e.metrics.ObserveFlowStarted(botID)
	e.logger.Info("booking flow started", "bot_id", botID)
	return NextPrompt(FieldOrder()[0], hours)
}

// Submit processes one user turn. It returns exactly one outbound message,
// or "" when the session is terminal and the turn is a no-op.
func (e *Engine) Submit(ctx context.Context, state *DialogueState, text string) string {
	if !state.Active() {
		return ""
	}

	order := FieldOrder()
	field := order[state.Cursor]
	result := Validate(field, text, state.Hours)

	if !result.Accepted {
		e.metrics.ObserveTurnRejected(field.String(), string(result.Reason))
		return Reprompt(field, state.Hours, result.Reason, e.exampleSlots(state))
	}

	state.Draft.Set(field, result.Value)

	if state.Cursor < len(order)-1 {
		state.Cursor++
		return NextPrompt(order[state.Cursor], state.Hours)
	}

	return e.complete(ctx, state)
}

// complete commits the finished draft. Persistence failure is fatal to the
// flow: the draft is discarded and the session ends abandoned, with no retry.
func (e *Engine) complete(ctx context.Context, state *DialogueState) string {
	completed := CompletedBooking{
		BotID:         state.BotID,
		Name:          state.Draft[FieldName],
		Email:         state.Draft[FieldEmail],
		Phone:         state.Draft[FieldPhone],
		Service:       state.Draft[FieldService],
		Date:          state.Draft[FieldDate],
		Time:          state.Draft[FieldTime],
		Notes:         state.Draft[FieldNotes],
		TimezoneLabel: state.Hours.TimezoneLabel,
		CollectedAt:   e.now().UTC(),
	}

	started := e.now()
	id, err := e.creator.CreateAppointment(ctx, completed)
	e.metrics.ObservePersistLatency(e.now().Sub(started).Seconds())

	if err != nil {
		state.State = StateAbandoned
		state.Draft = NewDraft()
		e.metrics.ObserveFlowAbandoned(state.BotID, "persistence_error")
		e.logger.Error("booking persistence failed", "bot_id", state.BotID, "error", err)
		return "Sorry, something went wrong while saving your appointment. Please start over or contact us directly."
	}

	state.State = StateCompleted
	e.metrics.ObserveFlowCompleted(state.BotID)
	e.logger.Info("booking flow completed", "bot_id", state.BotID, "appointment_id", id)
	return fmt.Sprintf("You're all set! Your %s appointment is booked for %s at %s. We'll be in touch at %s.",
		completed.Service, completed.Date, completed.Time, completed.Email)
}

// exampleSlots computes the available times quoted in a time reprompt: the
// business-hours slots filtered against the stored date, or the raw slot
// list when no date is known yet.
func (e *Engine) exampleSlots(state *DialogueState) []schedule.Slot {
	slots := state.Hours.Slots(e.stepMinutes)
	date, ok := state.Draft.Get(FieldDate)
	if !ok {
		return slots
	}
	return schedule.FilterFutureSlots(slots, date, e.now(), e.bufferMinutes)
}
