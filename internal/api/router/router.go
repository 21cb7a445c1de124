// Package router assembles the HTTP surface: the public chat endpoints the
// widget calls and the JWT-protected admin endpoints for operators.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chatforge/booking-engine/internal/appointments"
	"github.com/chatforge/booking-engine/internal/chat"
	httpmiddleware "github.com/chatforge/booking-engine/internal/http/middleware"
	"github.com/chatforge/booking-engine/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	ChatHandler         *chat.Handler
	AppointmentsHandler *appointments.Handler
	MetricsHandler      http.Handler
	AdminJWTSecret      string
	CORSAllowedOrigins  []string

	// Per-IP rate limit for the public chat endpoints. Zero disables it.
	ChatRateLimit float64
	ChatRateBurst int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}

		if cfg.ChatHandler != nil {
			public.Route("/chat/{botID}/booking", func(r chi.Router) {
				if cfg.ChatRateLimit > 0 {
					r.Use(httpmiddleware.RateLimit(cfg.ChatRateLimit, cfg.ChatRateBurst))
				}
				r.Post("/start", cfg.ChatHandler.StartBooking)
				r.Post("/message", cfg.ChatHandler.Message)
			})
			public.Get("/ws", cfg.ChatHandler.HandleWebSocket)
		}
	})

	// Admin routes (protected by HMAC JWT)
	if cfg.AdminJWTSecret != "" && cfg.AppointmentsHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			admin.Route("/bots/{botID}/appointments", func(r chi.Router) {
				r.Get("/", cfg.AppointmentsHandler.ListByBot)
				r.Patch("/{id}/status", cfg.AppointmentsHandler.UpdateStatus)
			})
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
