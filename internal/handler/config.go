package handler

import (
	"log/slog"
	"net/http"

	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/httputil"
)

// ConfigHandler handles timeline configuration HTTP requests
type ConfigHandler struct {
	configService svc.ConfigService
	logger        *slog.Logger
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(configService svc.ConfigService, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{
		configService: configService,
		logger:        logger,
	}
}

// GetConfig returns the configuration row
// GET /api/config
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.configService.GetConfig(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, cfg)
}

// UpdateConfig writes the supplied fields
// PUT /api/config
// PATCH /api/config
func (h *ConfigHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req svc.UpdateConfigRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.configService.UpdateConfig(r.Context(), &req); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, nil)
}
