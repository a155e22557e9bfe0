package handler

import (
	"log/slog"
	"net/http"

	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/httputil"
)

// EraHandler handles era HTTP requests
type EraHandler struct {
	eraService svc.EraService
	logger       *slog.Logger
}

// NewEraHandler creates a new era handler
func NewEraHandler(eraService svc.EraService, logger *slog.Logger) *EraHandler {
	return &EraHandler{
		eraService: eraService,
		logger:       logger,
	}
}

// ListEras returns era rows in timeline order
// GET /api/eras?active_only=true
func (h *EraHandler) ListEras(w http.ResponseWriter, r *http.Request) {
	activeOnly, ok := queryBool(w, r, "active_only", true)
	if !ok {
		return
	}

	eras, err := h.eraService.ListEras(r.Context(), activeOnly)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, eras)
}

// CreateEra creates a new era
// POST /api/eras
func (h *EraHandler) CreateEra(w http.ResponseWriter, r *http.Request) {
	var fields svc.Fields
	if err := httputil.ParseJSON(w, r, &fields); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.eraService.CreateEra(r.Context(), fields)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusCreated, map[string]any{"id": id})
}

// GetEra retrieves an era by ID
// GET /api/eras/{id}
func (h *EraHandler) GetEra(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	era, err := h.eraService.GetEra(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, era)
}

// UpdateEra writes the supplied fields of an era
// PUT /api/eras/{id}
func (h *EraHandler) UpdateEra(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var fields svc.Fields
	if err := httputil.ParseJSON(w, r, &fields); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.eraService.UpdateEra(r.Context(), id, fields); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, nil)
}

// DeleteEra deactivates or removes an era
// DELETE /api/eras/{id}?soft=true
func (h *EraHandler) DeleteEra(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	soft, ok := queryBool(w, r, "soft", true)
	if !ok {
		return
	}

	if err := h.eraService.DeleteEra(r.Context(), id, soft); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, nil)
}
