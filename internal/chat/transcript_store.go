package chat

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TranscriptStore persists chat turns to PostgreSQL for long-term audit.
// A nil store disables transcripts without branching at every call site.
type TranscriptStore struct {
	db *sql.DB
}

// NewTranscriptStore creates a transcript store.
func NewTranscriptStore(db *sql.DB) *TranscriptStore {
	if db == nil {
		return nil
	}
	return &TranscriptStore{db: db}
}

// TranscriptMessage is one recorded chat turn.
type TranscriptMessage struct {
	ID        uuid.UUID `json:"id"`
	BotID     string    `json:"bot_id"`
	SessionID string    `json:"session_id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Append records one turn.
func (s *TranscriptStore) Append(ctx context.Context, botID, sessionID, role, text string) error {
	if s == nil || s.db == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO chat_transcripts (id, bot_id, session_id, role, text) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), botID, sessionID, role, text,
	)
	if err != nil {
		return fmt.Errorf("chat: append transcript: %w", err)
	}
	return nil
}

// List returns the session's turns, oldest first.
func (s *TranscriptStore) List(ctx context.Context, botID, sessionID string, limit int) ([]TranscriptMessage, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, bot_id, session_id, role, text, created_at
		 FROM chat_transcripts
		 WHERE bot_id = $1 AND session_id = $2
		 ORDER BY created_at ASC
		 LIMIT $3`,
		botID, sessionID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("chat: list transcript: %w", err)
	}
	defer rows.Close()

	var out []TranscriptMessage
	for rows.Next() {
		var msg TranscriptMessage
		if err := rows.Scan(&msg.ID, &msg.BotID, &msg.SessionID, &msg.Role, &msg.Text, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("chat: scan transcript: %w", err)
		}
		out = append(out, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chat: transcript rows: %w", err)
	}
	return out, nil
}
