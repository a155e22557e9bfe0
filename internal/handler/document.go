package handler

import (
	"log/slog"
	"net/http"

	svc "tlstory/internal/domain/services/timeline"
	"tlstory/internal/httputil"
)

// ExportFilename names the export download
const ExportFilename = "timeline-export.json"

// DocumentHandler serves the generated timeline document
type DocumentHandler struct {
	documentService svc.DocumentService
	outputPath      string
	logger          *slog.Logger
}

// NewDocumentHandler creates a new document handler publishing to outputPath
func NewDocumentHandler(documentService svc.DocumentService, outputPath string, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		outputPath:      outputPath,
		logger:          logger,
	}
}

// GetDocument builds the document from current rows
// GET /api/generate-json
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.documentService.Generate(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// PublishDocument builds the document and writes it to the output file
// POST /api/generate-json
func (h *DocumentHandler) PublishDocument(w http.ResponseWriter, r *http.Request) {
	path, doc, err := h.documentService.Publish(r.Context(), h.outputPath)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondSuccess(w, http.StatusOK, map[string]any{
		"filepath": path,
		"data":     doc,
	})
}

// ExportDocument returns the document as a download
// GET /api/export
func (h *DocumentHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	payload, err := h.documentService.Export(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondAttachment(w, ExportFilename, payload)
}
