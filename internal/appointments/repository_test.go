package appointments

import (
	"context"
	"testing"
	"time"
)

func validRequest() *CreateAppointmentRequest {
	return &CreateAppointmentRequest{
		BotID:   "bot-1",
		Name:    "Jane Doe",
		Email:   "jane@example.com",
		Phone:   "555-1234",
		Service: "Consultation",
		Date:    "2026-04-01",
		Time:    "3:00 PM",
		Notes:   "Timezone: America/New_York",
	}
}

func TestInMemoryCreate(t *testing.T) {
	repo := NewInMemoryRepository()

	appt, err := repo.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if appt.ID == "" {
		t.Error("expected generated id")
	}
	if appt.Status != StatusPending {
		t.Errorf("expected pending status, got %s", appt.Status)
	}
	if appt.CreatedAt.IsZero() {
		t.Error("expected created_at to be set")
	}
}

func TestInMemoryCreateValidates(t *testing.T) {
	repo := NewInMemoryRepository()

	req := validRequest()
	req.Email = ""
	if _, err := repo.Create(context.Background(), req); err != ErrMissingEmail {
		t.Errorf("expected ErrMissingEmail, got %v", err)
	}

	req = validRequest()
	req.Time = ""
	if _, err := repo.Create(context.Background(), req); err != ErrMissingSchedule {
		t.Errorf("expected ErrMissingSchedule, got %v", err)
	}
}

func TestInMemoryGetScopedToBot(t *testing.T) {
	repo := NewInMemoryRepository()
	appt, err := repo.Create(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), "bot-1", appt.ID); err != nil {
		t.Errorf("get own bot: %v", err)
	}
	if _, err := repo.GetByID(context.Background(), "bot-2", appt.ID); err != ErrNotFound {
		t.Errorf("expected ErrNotFound for other bot, got %v", err)
	}
}

func TestInMemoryListByBot(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := repo.Create(ctx, validRequest()); err != nil {
			t.Fatalf("create: %v", err)
		}
		time.Sleep(time.Millisecond)
	}
	other := validRequest()
	other.BotID = "bot-2"
	if _, err := repo.Create(ctx, other); err != nil {
		t.Fatalf("create: %v", err)
	}

	appts, err := repo.ListByBot(ctx, "bot-1", 10, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(appts) != 3 {
		t.Fatalf("expected 3 appointments, got %d", len(appts))
	}
	for i := 1; i < len(appts); i++ {
		if appts[i].CreatedAt.After(appts[i-1].CreatedAt) {
			t.Error("expected newest-first ordering")
		}
	}

	paged, err := repo.ListByBot(ctx, "bot-1", 2, 2)
	if err != nil {
		t.Fatalf("list paged: %v", err)
	}
	if len(paged) != 1 {
		t.Errorf("expected 1 appointment on second page, got %d", len(paged))
	}
}

func TestInMemoryUpdateStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()
	appt, err := repo.Create(ctx, validRequest())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateStatus(ctx, "bot-1", appt.ID, StatusConfirmed); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := repo.GetByID(ctx, "bot-1", appt.ID)
	if got.Status != StatusConfirmed {
		t.Errorf("expected confirmed, got %s", got.Status)
	}

	if err := repo.UpdateStatus(ctx, "bot-1", appt.ID, Status("tentative")); err != ErrInvalidStatus {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, "bot-1", "missing", StatusCancelled); err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
