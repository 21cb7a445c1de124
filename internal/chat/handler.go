// Package chat is the hosting surface for the booking engine: HTTP and
// WebSocket endpoints the chat widget calls, session persistence around each
// turn, and the transcript trail.
package chat

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/chatforge/booking-engine/internal/booking"
	"github.com/chatforge/booking-engine/internal/bots"
	"github.com/chatforge/booking-engine/internal/session"
	"github.com/chatforge/booking-engine/pkg/logging"
)

// Handler drives booking conversations over HTTP.
type Handler struct {
	engine     *booking.Engine
	sessions   session.Store
	bots       bots.Store
	transcript *TranscriptStore
	logger     *logging.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewHandler creates a chat handler.
func NewHandler(engine *booking.Engine, sessions session.Store, botStore bots.Store, transcript *TranscriptStore, logger *logging.Logger) *Handler {
	if engine == nil {
		panic("chat: booking engine required")
	}
	if sessions == nil {
		panic("chat: session store required")
	}
	if botStore == nil {
		panic("chat: bot store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		engine:     engine,
		sessions:   sessions,
		bots:       botStore,
		transcript: transcript,
		logger:     logger,
		locks:      make(map[string]*sync.Mutex),
	}
}

// sessionLock serializes turns per session; the engine requires that no two
// submits race against the same DialogueState.
func (h *Handler) sessionLock(sessionID string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	lock, ok := h.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		h.locks[sessionID] = lock
	}
	return lock
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// StartRequest is the body for starting a booking conversation.
type StartRequest struct {
	SessionID string `json:"session_id"`
}

// TurnRequest is the body for one user turn.
type TurnRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// TurnResponse carries the single outbound message for a turn.
type TurnResponse struct {
	SessionID string        `json:"session_id"`
	Reply     string        `json:"reply"`
	State     booking.State `json:"state"`
}

// StartBooking handles POST /chat/{botID}/booking/start. It resets any
// existing flow for the session and returns the first question.
func (h *Handler) StartBooking(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")
	if botID == "" {
		http.Error(w, "missing bot_id", http.StatusBadRequest)
		return
	}

	var req StartRequest
	if r.Body != nil {
		// An empty body is fine; a new session is minted.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	bot, err := h.bots.GetBot(r.Context(), botID)
	if err != nil {
		if errors.Is(err, bots.ErrBotNotFound) {
			http.Error(w, "unknown bot", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load bot", "bot_id", botID, "error", err)
		http.Error(w, "failed to load bot", http.StatusInternalServerError)
		return
	}

	lock := h.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state := booking.NewDialogueState()
	reply := h.engine.Start(state, botID, bot.Hours)

	if err := h.sessions.Save(r.Context(), sessionID, state); err != nil {
		h.logger.Error("failed to save session", "session_id", sessionID, "error", err)
		http.Error(w, "failed to save session", http.StatusInternalServerError)
		return
	}
	h.appendTranscript(r.Context(), botID, sessionID, "assistant", reply)

	writeJSON(w, http.StatusOK, TurnResponse{SessionID: sessionID, Reply: reply, State: state.State})
}

// Message handles POST /chat/{botID}/booking/message: one user turn in, one
// system message out.
func (h *Handler) Message(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")
	if botID == "" {
		http.Error(w, "missing bot_id", http.StatusBadRequest)
		return
	}

	var req TurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		http.Error(w, "missing session_id", http.StatusBadRequest)
		return
	}

	reply, state, err := h.processTurn(r.Context(), botID, req.SessionID, req.Text)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			http.Error(w, "unknown session", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to process turn", "session_id", req.SessionID, "error", err)
		http.Error(w, "failed to process turn", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, TurnResponse{SessionID: req.SessionID, Reply: reply, State: state})
}

// processTurn runs one user turn through the engine and persists the state.
func (h *Handler) processTurn(ctx context.Context, botID, sessionID, text string) (string, booking.State, error) {
	lock := h.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	state, err := h.sessions.Load(ctx, sessionID)
	if err != nil {
		return "", "", err
	}

	h.appendTranscript(ctx, botID, sessionID, "user", text)
	reply := h.engine.Submit(ctx, state, text)

	if err := h.sessions.Save(ctx, sessionID, state); err != nil {
		return "", "", err
	}
	if reply != "" {
		h.appendTranscript(ctx, botID, sessionID, "assistant", reply)
	}
	return reply, state.State, nil
}

// appendTranscript records a turn; transcript failures never break the flow.
func (h *Handler) appendTranscript(ctx context.Context, botID, sessionID, role, text string) {
	if h.transcript == nil || text == "" {
		return
	}
	if err := h.transcript.Append(ctx, botID, sessionID, role, text); err != nil {
		h.logger.Warn("failed to append transcript", "session_id", sessionID, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
