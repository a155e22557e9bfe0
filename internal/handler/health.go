package handler

import (
	"net/http"
	"time"

	"tlstory/internal/httputil"
)

// HealthCheck is a simple liveness endpoint
// GET /api/health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]any{
		"status":    httputil.StatusOK,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
