package chat

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/chatforge/booking-engine/internal/booking"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The widget is embedded on arbitrary customer sites; origin policy is
	// enforced by the CORS layer for the HTTP endpoints and by bot lookup here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsInbound is what the widget sends.
type wsInbound struct {
	Type string `json:"type"` // "start", "message", "ping"
	Text string `json:"text"`
}

// wsOutbound is what we send to the widget.
type wsOutbound struct {
	Type      string `json:"type"` // "reply", "session", "error", "pong"
	Text      string `json:"text,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	State     string `json:"state,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

// HandleWebSocket upgrades to WebSocket and drives the booking flow over a
// persistent connection. Turns arrive strictly in order on the connection, so
// the per-session serialization the engine needs comes for free.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	botID := r.URL.Query().Get("bot")
	if botID == "" {
		http.Error(w, "missing bot parameter", http.StatusBadRequest)
		return
	}

	bot, err := h.bots.GetBot(r.Context(), botID)
	if err != nil {
		http.Error(w, "unknown bot", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "bot_id", botID, "error", err)
		return
	}
	defer conn.Close()

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}
	_ = conn.WriteJSON(wsOutbound{Type: "session", SessionID: sessionID})

	h.logger.Info("webchat connection opened", "bot_id", botID, "session_id", sessionID)

	for {
		var msg wsInbound
		if err := conn.ReadJSON(&msg); err != nil {
			h.logger.Debug("webchat connection closed", "bot_id", botID, "error", err)
			return
		}

		switch msg.Type {
		case "ping":
			_ = conn.WriteJSON(wsOutbound{Type: "pong"})

		case "start":
			lock := h.sessionLock(sessionID)
			lock.Lock()
			state := booking.NewDialogueState()
			reply := h.engine.Start(state, botID, bot.Hours)
			err := h.sessions.Save(r.Context(), sessionID, state)
			lock.Unlock()
			if err != nil {
				_ = conn.WriteJSON(wsOutbound{Type: "error", Text: "failed to start booking"})
				continue
			}
			h.appendTranscript(r.Context(), botID, sessionID, "assistant", reply)
			h.writeReply(conn, sessionID, reply, string(state.State))

		case "message":
			if strings.TrimSpace(msg.Text) == "" {
				continue
			}
			reply, state, err := h.processTurn(r.Context(), botID, sessionID, msg.Text)
			if err != nil {
				_ = conn.WriteJSON(wsOutbound{Type: "error", Text: "no active booking for this session"})
				continue
			}
			if reply != "" {
				h.writeReply(conn, sessionID, reply, string(state))
			}
		}
	}
}

func (h *Handler) writeReply(conn *websocket.Conn, sessionID, text, state string) {
	_ = conn.WriteJSON(wsOutbound{
		Type:      "reply",
		Text:      text,
		SessionID: sessionID,
		State:     state,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
