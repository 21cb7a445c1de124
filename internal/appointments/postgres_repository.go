package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxPool is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores appointments in the relational database.
type PostgresRepository struct {
	pool PgxPool
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(pool PgxPool) *PostgresRepository {
	if pool == nil {
		panic("appointments: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row with status pending.
func (r *PostgresRepository) Create(ctx context.Context, req *CreateAppointmentRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO appointments (id, bot_id, name, email, phone, service, date, time, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.BotID,
		req.Name,
		req.Email,
		req.Phone,
		req.Service,
		req.Date,
		req.Time,
		string(StatusPending),
		req.Notes,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("appointments: insert failed: %w", err)
	}

	return &Appointment{
		ID:        id.String(),
		BotID:     req.BotID,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Service:   req.Service,
		Date:      req.Date,
		Time:      req.Time,
		Status:    StatusPending,
		Notes:     req.Notes,
		CreatedAt: createdAt,
	}, nil
}

// GetByID fetches an appointment scoped to the bot.
func (r *PostgresRepository) GetByID(ctx context.Context, botID, id string) (*Appointment, error) {
	query := `
		SELECT id, bot_id, name, email, phone, service, date, time, status, notes, created_at
		FROM appointments
		WHERE id = $1 AND bot_id = $2
	`
	appt, err := scanAppointment(r.pool.QueryRow(ctx, query, id, botID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("appointments: select failed: %w", err)
	}
	return appt, nil
}

// ListByBot returns the bot's appointments, newest first.
func (r *PostgresRepository) ListByBot(ctx context.Context, botID string, limit, offset int) ([]*Appointment, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT id, bot_id, name, email, phone, service, date, time, status, notes, created_at
		FROM appointments
		WHERE bot_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, botID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("appointments: list failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Appointment, 0, limit)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("appointments: scan failed: %w", err)
		}
		out = append(out, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("appointments: list rows: %w", err)
	}
	return out, nil
}

// UpdateStatus moves an appointment to a new lifecycle state.
func (r *PostgresRepository) UpdateStatus(ctx context.Context, botID, id string, status Status) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	tag, err := r.pool.Exec(ctx,
		`UPDATE appointments SET status = $1, updated_at = now() WHERE id = $2 AND bot_id = $3`,
		string(status), id, botID,
	)
	if err != nil {
		return fmt.Errorf("appointments: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var appt Appointment
	var status string
	if err := row.Scan(
		&appt.ID,
		&appt.BotID,
		&appt.Name,
		&appt.Email,
		&appt.Phone,
		&appt.Service,
		&appt.Date,
		&appt.Time,
		&status,
		&appt.Notes,
		&appt.CreatedAt,
	); err != nil {
		return nil, err
	}
	appt.Status = Status(status)
	return &appt, nil
}
