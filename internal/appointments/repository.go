package appointments

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for appointment storage
type Repository interface {
	Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error)
	GetByID(ctx context.Context, botID, id string) (*Appointment, error)
	ListByBot(ctx context.Context, botID string, limit, offset int) ([]*Appointment, error)
	UpdateStatus(ctx context.Context, botID, id string, status Status) error
}

// InMemoryRepository is an in-memory Repository for tests and local runs.
type InMemoryRepository struct {
	mu           sync.RWMutex
	appointments map[string]*Appointment
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		appointments: make(map[string]*Appointment),
	}
}

// Create stores a new appointment with status pending.
func (r *InMemoryRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	appt := &Appointment{
		ID:        uuid.New().String(),
		BotID:     req.BotID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusPending,
		Notes:     req.Notes,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.appointments[appt.ID] = appt
	r.mu.Unlock()

	return appt, nil
}

// GetByID retrieves an appointment scoped to the bot.
func (r *InMemoryRepository) GetByID(ctx context.Context, botID, id string) (*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	appt, ok := r.appointments[id]
	if !ok || appt.BotID != botID {
		return nil, ErrNotFound
	}
	copied := *appt
	return &copied, nil
}

// ListByBot returns the bot's appointments, newest first.
func (r *InMemoryRepository) ListByBot(ctx context.Context, botID string, limit, offset int) ([]*Appointment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*Appointment
	for _, appt := range r.appointments {
		if appt.BotID == botID {
			copied := *appt
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

	if offset >= len(out) {
		return []*Appointment{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// UpdateStatus moves an appointment to a new lifecycle state.
func (r *InMemoryRepository) UpdateStatus(ctx context.Context, botID, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	appt, ok := r.appointments[id]
	if !ok || appt.BotID != botID {
		return ErrNotFound
	}
	appt.Status = status
	return nil
}
