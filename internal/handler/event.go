package handler

import (
	"log/slog"
	"net/http"

	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/httputil"
)

// EventHandler handles event HTTP requests
type EventHandler struct {
	eventService svc.EventService
	logger       *slog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService svc.EventService, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		logger:       logger,
	}
}

// ListEvents returns event rows in timeline order
// GET /api/events?active_only=true
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	activeOnly, ok := queryBool(w, r, "active_only", true)
	if !ok {
		return
	}

	events, err := h.eventService.ListEvents(r.Context(), activeOnly)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, events)
}

// CreateEvent creates a new event
// POST /api/events
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var fields svc.Fields
	if err := httputil.ParseJSON(w, r, &fields); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.eventService.CreateEvent(r.Context(), fields)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, map[string]any{"id": id})
}

// GetEvent retrieves an event by ID
// GET /api/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	event, err := h.eventService.GetEvent(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, event)
}

// UpdateEvent writes the supplied fields of an event
// PUT /api/events/{id}
func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var fields svc.Fields
	if err := httputil.ParseJSON(w, r, &fields); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.eventService.UpdateEvent(r.Context(), id, fields); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, nil)
}

// DeleteEvent deactivates or removes an event
// DELETE /api/events/{id}?soft=true
func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	soft, ok := queryBool(w, r, "soft", true)
	if !ok {
		return
	}

	if err := h.eventService.DeleteEvent(r.Context(), id, soft); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, nil)
}
