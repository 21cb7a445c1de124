package appointments

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/chatforge/booking-engine/pkg/logging"
)

// Handler exposes the administrative appointment endpoints. Status changes
// happen here, never in the booking engine.
type Handler struct {
	repo    Repository
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a new appointments handler
func NewHandler(repo Repository, service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, service: service, logger: logger}
}

// ListAppointmentsResponse is the response for listing a bot's appointments
type ListAppointmentsResponse struct {
	Appointments []*Appointment `json:"appointments"`
	Count        int            `json:"count"`
	Offset       int            `json:"offset"`
	Limit        int            `json:"limit"`
}

// ListByBot handles GET /admin/bots/{botID}/appointments
func (h *Handler) ListByBot(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")
	if botID == "" {
		http.Error(w, "missing bot_id", http.StatusBadRequest)
		return
	}

	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if v, err := strconv.Atoi(limitStr); err == nil && v > 0 && v <= 100 {
			limit = v
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if v, err := strconv.Atoi(offsetStr); err == nil && v >= 0 {
			offset = v
		}
	}

	appts, err := h.repo.ListByBot(r.Context(), botID, limit, offset)
	if err != nil {
		h.logger.Error("failed to list appointments", "bot_id", botID, "error", err)
		http.Error(w, "failed to list appointments", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ListAppointmentsResponse{
		Appointments: appts,
		Count:        len(appts),
		Offset:       offset,
		Limit:        limit,
	})
}

// UpdateStatusRequest is the body for a status transition
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// UpdateStatus handles PATCH /admin/bots/{botID}/appointments/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	botID := chi.URLParam(r, "botID")
	id := chi.URLParam(r, "id")
	if botID == "" || id == "" {
		http.Error(w, "missing bot_id or appointment id", http.StatusBadRequest)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.UpdateStatus(r.Context(), botID, id, req.Status)
	switch {
	case errors.Is(err, ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	case err != nil:
		h.logger.Error("failed to update appointment status", "appointment_id", id, "error", err)
		http.Error(w, "failed to update status", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
