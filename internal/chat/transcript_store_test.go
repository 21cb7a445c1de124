package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
)

func newMockTranscriptStore(t *testing.T) (*TranscriptStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewTranscriptStore(db), mock
}

func TestTranscriptAppend(t *testing.T) {
	store, mock := newMockTranscriptStore(t)

	mock.ExpectExec(`INSERT INTO chat_transcripts`).
		WithArgs(sqlmock.AnyArg(), "bot-1", "s1", "user", "Jane Doe").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.Append(context.Background(), "bot-1", "s1", "user", "Jane Doe"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestTranscriptAppendError(t *testing.T) {
	store, mock := newMockTranscriptStore(t)

	mock.ExpectExec(`INSERT INTO chat_transcripts`).
		WillReturnError(errors.New("connection refused"))

	if err := store.Append(context.Background(), "bot-1", "s1", "user", "hi"); err == nil {
		t.Fatal("expected error")
	}
}

func TestTranscriptList(t *testing.T) {
	store, mock := newMockTranscriptStore(t)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "bot_id", "session_id", "role", "text", "created_at"}).
		AddRow(uuid.New().String(), "bot-1", "s1", "assistant", "What's your full name?", now).
		AddRow(uuid.New().String(), "bot-1", "s1", "user", "Jane Doe", now.Add(time.Second))

	mock.ExpectQuery(`SELECT id, bot_id, session_id, role, text, created_at`).
		WithArgs("bot-1", "s1", 100).
		WillReturnRows(rows)

	msgs, err := store.List(context.Background(), "bot-1", "s1", 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}
	if msgs[0].Role != "assistant" || msgs[1].Text != "Jane Doe" {
		t.Errorf("unexpected order: %#v", msgs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestNilTranscriptStoreIsNoOp(t *testing.T) {
	var store *TranscriptStore

	if err := store.Append(context.Background(), "bot-1", "s1", "user", "hi"); err != nil {
		t.Errorf("nil store append: %v", err)
	}
	msgs, err := store.List(context.Background(), "bot-1", "s1", 10)
	if err != nil || msgs != nil {
		t.Errorf("nil store list: %v %v", msgs, err)
	}
}
