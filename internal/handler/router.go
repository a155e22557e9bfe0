package handler

import (
	"net/http"
)

// Handlers groups everything the router mounts
type Handlers struct {
	Config   *ConfigHandler
	Events   *EventHandler
	Eras     *EraHandler
	Document *DocumentHandler
	Import   *ImportHandler
	Backup   *BackupHandler

	// Metrics is mounted at /metrics when set
	Metrics http.Handler
	// StaticDir is served at / when set
	StaticDir string
}

// NewRouter registers every route (Go 1.22+ enhanced patterns)
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", HealthCheck)

	// Config routes
	mux.HandleFunc("GET /api/config", h.Config.GetConfig)
	mux.HandleFunc("PUT /api/config", h.Config.UpdateConfig)
	mux.HandleFunc("PATCH /api/config", h.Config.UpdateConfig)

	// Event routes
	mux.HandleFunc("GET /api/events", h.Events.ListEvents)
	mux.HandleFunc("POST /api/events", h.Events.CreateEvent)
	mux.HandleFunc("GET /api/events/{id}", h.Events.GetEvent)
	mux.HandleFunc("PUT /api/events/{id}", h.Events.UpdateEvent)
	mux.HandleFunc("DELETE /api/events/{id}", h.Events.DeleteEvent)

	// Era routes
	mux.HandleFunc("GET /api/eras", h.Eras.ListEras)
	mux.HandleFunc("POST /api/eras", h.Eras.CreateEra)
	mux.HandleFunc("GET /api/eras/{id}", h.Eras.GetEra)
	mux.HandleFunc("PUT /api/eras/{id}", h.Eras.UpdateEra)
	mux.HandleFunc("DELETE /api/eras/{id}", h.Eras.DeleteEra)

	// Document routes
	mux.HandleFunc("GET /api/generate-json", h.Document.GetDocument)
	mux.HandleFunc("POST /api/generate-json", h.Document.PublishDocument)
	mux.HandleFunc("GET /api/export", h.Document.ExportDocument)

	// Import and backup routes
	mux.HandleFunc("POST /api/import", h.Import.Merge)
	mux.HandleFunc("POST /api/import/replace", h.Import.Replace)
	mux.HandleFunc("POST /api/backup", h.Backup.CreateBackup)

	if h.Metrics != nil {
		mux.Handle("GET /metrics", h.Metrics)
	}
	if h.StaticDir != "" {
		mux.Handle("GET /", http.FileServer(http.Dir(h.StaticDir)))
	}

	return mux
}
