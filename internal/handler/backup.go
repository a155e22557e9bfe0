package handler

import (
	"log/slog"
	"net/http"

	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/httputil"
)

// BackupHandler triggers snapshots on demand
type BackupHandler struct {
	backupService svc.BackupService
	logger        *slog.Logger
}

// NewBackupHandler creates a new backup handler
func NewBackupHandler(backupService svc.BackupService, logger *slog.Logger) *BackupHandler {
	return &BackupHandler{
		backupService: backupService,
		logger:        logger,
	}
}

// CreateBackup writes a snapshot of every row
// POST /api/backup
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	path, err := h.backupService.Backup(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, map[string]any{"filepath": path})
}
