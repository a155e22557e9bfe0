package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"tlstory/internal/config"
	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/httputil"
	"tlstory/internal/seed"
)

// ImportHandler handles seed imports.
//
// Supports two modes:
//   - Merge: applies the config section and adds every event and era
//   - Replace: removes all events and eras first, then merges
type ImportHandler struct {
	importService svc.ImportService
	logger        *slog.Logger
}

// NewImportHandler creates a new import handler
func NewImportHandler(importService svc.ImportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		logger:        logger,
	}
}

// Merge imports a YAML or JSON seed body
// POST /api/import
func (h *ImportHandler) Merge(w http.ResponseWriter, r *http.Request) {
	h.processImportRequest(w, r, false)
}

// Replace imports a seed body after removing all events and eras
// POST /api/import/replace
func (h *ImportHandler) Replace(w http.ResponseWriter, r *http.Request) {
	h.processImportRequest(w, r, true)
}

func (h *ImportHandler) processImportRequest(w http.ResponseWriter, r *http.Request, replace bool) {
	data, err := httputil.ReadBody(w, r, config.MaxImportBytes)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, httputil.ErrBodyTooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		httputil.RespondError(w, status, err.Error())
		return
	}

	file, err := seed.Parse(data)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	mode := "merge"
	apply := h.importService.Merge
	if replace {
		mode = "replace"
		apply = h.importService.Replace
	}

	h.logger.Info("starting import",
		"mode", mode,
		"request_id", httputil.GetRequestID(r),
		"events", len(file.Events),
		"eras", len(file.Eras),
	)

	result, err := apply(r.Context(), file)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	body := map[string]any{
		"config_updated": result.ConfigUpdated,
		"events":         result.Events,
		"eras":           result.Eras,
	}
	if replace {
		body["removed_events"] = result.RemovedEvents
		body["removed_eras"] = result.RemovedEras
	}
	httputil.RespondSuccess(w, http.StatusOK, body)
}
