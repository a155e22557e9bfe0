package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"tlstory/internal/metrics"
	"tlstory/internal/publish"
	"tlstory/internal/repository/sqlite"
	timelineSvc "tlstory/internal/service/timeline"
)

type testServer struct {
	mux        *http.ServeMux
	outputPath string
	backupDir  string
	staticDir  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.NewStore(t.Context(), ":memory:", "", logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	dir := t.TempDir()
	ts := &testServer{
		outputPath: filepath.Join(dir, "data", "tl-story.json"),
		backupDir:  filepath.Join(dir, "data", "backups"),
		staticDir:  filepath.Join(dir, "static"),
	}
	require.NoError(t, os.MkdirAll(ts.staticDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(ts.staticDir, "index.html"), []byte("<h1>admin</h1>"), 0o644))

	rec := metrics.NoopRecorder{}
	writer := publish.NewWriter(logger)
	configSvc := timelineSvc.NewConfigService(store.Config, rec, logger)
	eventSvc := timelineSvc.NewEventService(store.Events, rec, logger)
	eraSvc := timelineSvc.NewEraService(store.Eras, rec, logger)
	docSvc := timelineSvc.NewDocumentService(store, writer, rec, logger)
	backupSvc := timelineSvc.NewBackupService(store, writer, ts.backupDir, 3, rec, logger)
	importSvc := timelineSvc.NewImportService(configSvc, eventSvc, eraSvc, logger)

	ts.mux = NewRouter(Handlers{
		Config:    NewConfigHandler(configSvc, logger),
		Events:    NewEventHandler(eventSvc, logger),
		Eras:      NewEraHandler(eraSvc, logger),
		Document:  NewDocumentHandler(docSvc, ts.outputPath, logger),
		Import:    NewImportHandler(importSvc, logger),
		Backup:    NewBackupHandler(backupSvc, logger),
		Metrics:   http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("# metrics")) }),
		StaticDir: ts.staticDir,
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	require.Equal(t, "ok", body["status"])
	require.NotEmpty(t, body["timestamp"])
}

func TestEventRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/events", `{"headline":"Moon landing","start_year":1969,"start_month":7}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	require.Equal(t, "success", created["status"])
	id := int64(created["id"].(float64))
	require.Positive(t, id)

	rec = ts.do(t, http.MethodGet, "/api/events/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	event := decode(t, rec)
	require.Equal(t, "Moon landing", event["headline"])
	require.Equal(t, float64(1969), event["start_year"])
	require.Equal(t, float64(7), event["start_month"])

	rec = ts.do(t, http.MethodPut, "/api/events/1", `{"headline":"Apollo 11","text":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/events", "")
	require.Equal(t, http.StatusOK, rec.Code)
	events := decodeList(t, rec)
	require.Len(t, events, 1)
	require.Equal(t, "Apollo 11", events[0]["headline"])
	require.Equal(t, float64(7), events[0]["start_month"])

	// soft delete by default
	rec = ts.do(t, http.MethodDelete, "/api/events/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/events", "")
	require.Empty(t, decodeList(t, rec))

	rec = ts.do(t, http.MethodGet, "/api/events?active_only=false", "")
	all := decodeList(t, rec)
	require.Len(t, all, 1)
	require.Equal(t, false, all[0]["is_active"])

	rec = ts.do(t, http.MethodDelete, "/api/events/1?soft=false", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/events/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEventErrors(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/events", `{"headline":"First","start_year":1900,"unique_id":"first"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
	}{
		{name: "unknown id", method: http.MethodGet, target: "/api/events/99", wantStatus: http.StatusNotFound},
		{name: "update unknown id", method: http.MethodPut, target: "/api/events/99", body: `{"headline":"x"}`, wantStatus: http.StatusNotFound},
		{name: "delete unknown id", method: http.MethodDelete, target: "/api/events/99", wantStatus: http.StatusNotFound},
		{name: "non numeric id", method: http.MethodGet, target: "/api/events/abc", wantStatus: http.StatusBadRequest},
		{name: "malformed body", method: http.MethodPost, target: "/api/events", body: `{"headline":`, wantStatus: http.StatusBadRequest},
		{name: "missing headline", method: http.MethodPost, target: "/api/events", body: `{"start_year":1900}`, wantStatus: http.StatusBadRequest},
		{name: "missing start year", method: http.MethodPost, target: "/api/events", body: `{"headline":"x"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown column", method: http.MethodPost, target: "/api/events", body: `{"headline":"x","start_year":1,"color":"red"}`, wantStatus: http.StatusBadRequest},
		{name: "wrong type", method: http.MethodPost, target: "/api/events", body: `{"headline":"x","start_year":"1900"}`, wantStatus: http.StatusBadRequest},
		{name: "bad soft flag", method: http.MethodDelete, target: "/api/events/1?soft=maybe", wantStatus: http.StatusBadRequest},
		{name: "duplicate unique id", method: http.MethodPost, target: "/api/events", body: `{"headline":"Again","start_year":1901,"unique_id":"first"}`, wantStatus: http.StatusConflict},
		{name: "method not allowed", method: http.MethodPatch, target: "/api/events/1", body: `{}`, wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(t, tt.method, tt.target, tt.body)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantStatus != http.StatusMethodNotAllowed {
				require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestEraRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/eras", `{"headline":"Space Age","start_year":1957}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/eras", `{"headline":"Space Age","start_year":1957,"end_year":1975}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/eras/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Space Age", decode(t, rec)["headline"])

	rec = ts.do(t, http.MethodPut, "/api/eras/1", `{"end_year":1991}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/eras", "")
	eras := decodeList(t, rec)
	require.Len(t, eras, 1)
	require.Equal(t, float64(1991), eras[0]["end_year"])

	rec = ts.do(t, http.MethodDelete, "/api/eras/2", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConfigRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	cfg := decode(t, rec)
	require.Equal(t, timelineSvc.DefaultTitleHeadline, cfg["title_headline"])
	require.Equal(t, "human", cfg["scale"])

	rec = ts.do(t, http.MethodPatch, "/api/config", `{"scale":"cosmological"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "success", decode(t, rec)["status"])

	rec = ts.do(t, http.MethodPut, "/api/config", `{"title_headline":"Deep Time"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/config", "")
	cfg = decode(t, rec)
	require.Equal(t, "Deep Time", cfg["title_headline"])
	require.Equal(t, "cosmological", cfg["scale"])

	rec = ts.do(t, http.MethodPut, "/api/config", `{"scale":"geological"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDocumentRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/events", `{"headline":"Transistor","start_year":1947,"media_url":"https://example.com/t.jpg"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodPost, "/api/events", `{"headline":"Hidden","start_year":1950,"is_active":false}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(t, http.MethodGet, "/api/generate-json", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	want := []any{
		map[string]any{
			"start_date": map[string]any{"year": float64(1947)},
			"text":       map[string]any{"headline": "Transistor", "text": ""},
			"media":      map[string]any{"url": "https://example.com/t.jpg"},
			"autolink":   true,
		},
	}
	if diff := cmp.Diff(want, doc["events"]); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, "human", doc["scale"])

	rec = ts.do(t, http.MethodPost, "/api/generate-json", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	published := decode(t, rec)
	require.Equal(t, "success", published["status"])
	require.Equal(t, ts.outputPath, published["filepath"])
	require.NotNil(t, published["data"])

	onDisk, err := os.ReadFile(ts.outputPath)
	require.NoError(t, err)

	rec = ts.do(t, http.MethodGet, "/api/export", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, `attachment; filename="timeline-export.json"`, rec.Header().Get("Content-Disposition"))
	require.Equal(t, string(onDisk), rec.Body.String())
}

func TestImportRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/events", `{"headline":"Old","start_year":1800}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	yamlBody := `
config:
  title_headline: Imported
events:
  - headline: Steam engine
    start_year: 1712
  - headline: Telegraph
    start_year: 1837
eras:
  - headline: Industrial Revolution
    start_year: 1760
    end_year: 1840
`
	rec = ts.do(t, http.MethodPost, "/api/import", yamlBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, map[string]any{
		"status":         "success",
		"config_updated": true,
		"events":         float64(2),
		"eras":           float64(1),
	}, decode(t, rec))

	rec = ts.do(t, http.MethodGet, "/api/events", "")
	require.Len(t, decodeList(t, rec), 3)

	rec = ts.do(t, http.MethodPost, "/api/import/replace", `{"events":[{"headline":"Only","start_year":2000}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	result := decode(t, rec)
	require.Equal(t, float64(3), result["removed_events"])
	require.Equal(t, float64(1), result["removed_eras"])

	rec = ts.do(t, http.MethodGet, "/api/events?active_only=false", "")
	events := decodeList(t, rec)
	require.Len(t, events, 1)
	require.Equal(t, "Only", events[0]["headline"])

	rec = ts.do(t, http.MethodPost, "/api/import", "events: [oops")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/import", `{"events":[{"start_year":1}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBackupRoute(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/backup", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	path, _ := body["filepath"].(string)
	require.Equal(t, ts.backupDir, filepath.Dir(path))
	require.FileExists(t, path)
}

func TestStaticAndMetrics(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<h1>admin</h1>")

	rec = ts.do(t, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "# metrics", rec.Body.String())
}
