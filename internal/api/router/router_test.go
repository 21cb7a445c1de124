package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/chatforge/booking-engine/internal/appointments"
	"github.com/chatforge/booking-engine/internal/booking"
	"github.com/chatforge/booking-engine/internal/bots"
	"github.com/chatforge/booking-engine/internal/chat"
	"github.com/chatforge/booking-engine/internal/schedule"
	"github.com/chatforge/booking-engine/internal/session"
	"github.com/chatforge/booking-engine/pkg/logging"
)

func newTestRouter(t *testing.T, adminSecret string) http.Handler {
	t.Helper()

	logger := logging.Default()
	repo := appointments.NewInMemoryRepository()
	svc := appointments.NewService(repo, logger)
	engine := booking.NewEngine(svc, logger)

	botStore := bots.NewInMemoryStore()
	botStore.Put(&bots.Bot{
		ID:    "bot-1",
		Name:  "Glow Salon",
		Hours: schedule.Hours{Open: "09:00", Close: "17:00", TimezoneLabel: "America/New_York"},
	})

	chatHandler := chat.NewHandler(engine, session.NewInMemoryStore(), botStore, nil, logger)
	apptHandler := appointments.NewHandler(repo, svc, logger)

	return New(&Config{
		Logger:              logger,
		ChatHandler:         chatHandler,
		AppointmentsHandler: apptHandler,
		MetricsHandler:      promhttp.Handler(),
		AdminJWTSecret:      adminSecret,
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterChatStartEndpoint(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodPost, "/chat/bot-1/booking/start", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp chat.TurnResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.SessionID == "" {
		t.Error("expected a session id")
	}
	if resp.Reply != "What's your full name?" {
		t.Errorf("unexpected first prompt %q", resp.Reply)
	}
}

// Admin routes are not mounted at all when no secret is configured; a stray
// deployment without ADMIN_JWT_SECRET must not expose appointments.
func TestRouterAdminRoutesAbsentWithoutSecret(t *testing.T) {
	router := newTestRouter(t, "")

	req := httptest.NewRequest(http.MethodGet, "/admin/bots/bot-1/appointments", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestRouterAdminRequiresJWT(t *testing.T) {
	router := newTestRouter(t, "test-secret")

	req := httptest.NewRequest(http.MethodGet, "/admin/bots/bot-1/appointments", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d without token, got %d", http.StatusUnauthorized, rr.Code)
	}

	claims := jwt.RegisteredClaims{
		Subject:   "ops@chatforge.dev",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(5 * time.Minute)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin/bots/bot-1/appointments", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d with token, got %d", http.StatusOK, rr.Code)
	}

	var resp appointments.ListAppointmentsResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 0 {
		t.Errorf("expected empty list, got %d", resp.Count)
	}
}

func TestRouterChatRateLimit(t *testing.T) {
	logger := logging.Default()
	repo := appointments.NewInMemoryRepository()
	svc := appointments.NewService(repo, logger)
	engine := booking.NewEngine(svc, logger)
	botStore := bots.NewInMemoryStore()
	botStore.Put(&bots.Bot{ID: "bot-1", Hours: schedule.Hours{Open: "09:00", Close: "17:00"}})
	chatHandler := chat.NewHandler(engine, session.NewInMemoryStore(), botStore, nil, logger)

	router := New(&Config{
		Logger:        logger,
		ChatHandler:   chatHandler,
		ChatRateLimit: 0.001,
		ChatRateBurst: 1,
	})

	req := httptest.NewRequest(http.MethodPost, "/chat/bot-1/booking/start", bytes.NewReader([]byte("{}")))
	req.Header.Set("X-Real-Ip", "203.0.113.9")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("first request: expected %d, got %d", http.StatusOK, rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/chat/bot-1/booking/start", bytes.NewReader([]byte("{}")))
	req.Header.Set("X-Real-Ip", "203.0.113.9")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("second request: expected %d, got %d", http.StatusTooManyRequests, rr.Code)
	}
}
