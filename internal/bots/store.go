package bots

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5"
)

// Store looks up bot configuration.
type Store interface {
	GetBot(ctx context.Context, id string) (*Bot, error)
}

// InMemoryStore is a Store for tests and local runs.
type InMemoryStore struct {
	mu   sync.RWMutex
	bots map[string]*Bot
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{bots: make(map[string]*Bot)}
}

// Put registers or replaces a bot.
func (s *InMemoryStore) Put(bot *Bot) {
	s.mu.Lock()
	s.bots[bot.ID] = bot
	s.mu.Unlock()
}

// GetBot returns the bot's configuration.
func (s *InMemoryStore) GetBot(ctx context.Context, id string) (*Bot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bot, ok := s.bots[id]
	if !ok {
		return nil, ErrBotNotFound
	}
	copied := *bot
	return &copied, nil
}

// PgxPool is the subset of pgxpool.Pool the store needs; pgxmock satisfies
// it in tests.
type PgxPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore reads bot configuration from the relational database.
type PostgresStore struct {
	pool PgxPool
}

// NewPostgresStore initializes a store backed by a pgx pool.
func NewPostgresStore(pool PgxPool) *PostgresStore {
	if pool == nil {
		panic("bots: pgx pool required")
	}
	return &PostgresStore{pool: pool}
}

// GetBot returns the bot's configuration.
func (s *PostgresStore) GetBot(ctx context.Context, id string) (*Bot, error) {
	query := `
		SELECT id, name, open_time, close_time, timezone_label, slot_step_minutes, created_at
		FROM bots
		WHERE id = $1
	`
	var bot Bot
	if err := s.pool.QueryRow(ctx, query, id).Scan(
		&bot.ID,
		&bot.Name,
		&bot.Hours.Open,
		&bot.Hours.Close,
		&bot.Hours.TimezoneLabel,
		&bot.SlotStepMinutes,
		&bot.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBotNotFound
		}
		return nil, fmt.Errorf("bots: select failed: %w", err)
	}
	return &bot, nil
}
