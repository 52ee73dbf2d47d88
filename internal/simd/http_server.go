package simd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/GoSim-25-26J-441/sir-simulation/internal/report"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/logger"
	"github.com/GoSim-25-26J-441/sir-simulation/pkg/models"
)

type HTTPServer struct {
	mux      *http.ServeMux
	store    *RunStore
	Executor *RunExecutor
}

func NewHTTPServer(store *RunStore, executor *RunExecutor) *HTTPServer {
	s := &HTTPServer{
		mux:      http.NewServeMux(),
		store:    store,
		Executor: executor,
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/runs", s.handleRuns)
	s.mux.HandleFunc("/v1/runs/", s.handleRunByID)

	return s
}

func (s *HTTPServer) Handler() http.Handler {
	return s.mux
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleRuns handles /v1/runs endpoint
func (s *HTTPServer) handleRuns(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateRun(w, r)
	case http.MethodGet:
		s.handleListRuns(w, r)
	default:
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

// handleRunByID handles /v1/runs/{id} and /v1/runs/{id}/chart
func (s *HTTPServer) handleRunByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/runs/")
	if path == "" {
		s.writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if runID, ok := strings.CutSuffix(path, "/chart"); ok {
		s.handleRunChart(w, r, runID)
		return
	}
	s.handleGetRun(w, r, path)
}

// handleCreateRun handles POST /v1/runs. The run executes before the response is written.
func (s *HTTPServer) handleCreateRun(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RunID string    `json:"run_id,omitempty"`
		Input *RunInput `json:"input"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Input == nil {
		s.writeError(w, http.StatusBadRequest, "input is required")
		return
	}

	rec, err := s.Executor.Execute(r.Context(), req.RunID, req.Input)
	if err != nil {
		switch {
		case errors.Is(err, ErrRunExists):
			s.writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, ErrInvalidInput):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	logger.Info("run executed (HTTP)", "run_id", rec.Run.ID, "status", rec.Run.Status)
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"run": convertRunToJSON(rec.Run),
	})
}

// handleListRuns handles GET /v1/runs?limit=&status=
func (s *HTTPServer) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = min(parsed, 1000)
		}
	}
	status := parseRunStatus(r.URL.Query().Get("status"))

	runs := s.store.List(limit, status)
	runsJSON := make([]map[string]any, 0, len(runs))
	for _, rec := range runs {
		runsJSON = append(runsJSON, convertRunToJSON(rec.Run))
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"runs":  runsJSON,
		"count": len(runsJSON),
	})
}

// parseRunStatus maps a status filter to a RunStatus; unknown values match all runs
func parseRunStatus(statusStr string) models.RunStatus {
	switch models.RunStatus(strings.ToLower(statusStr)) {
	case models.RunStatusPending:
		return models.RunStatusPending
	case models.RunStatusRunning:
		return models.RunStatusRunning
	case models.RunStatusCompleted:
		return models.RunStatusCompleted
	case models.RunStatusFailed:
		return models.RunStatusFailed
	default:
		return ""
	}
}

// handleGetRun handles GET /v1/runs/{id}
func (s *HTTPServer) handleGetRun(w http.ResponseWriter, _ *http.Request, runID string) {
	rec, ok := s.store.Get(runID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"run": convertRunToJSON(rec.Run),
	})
}

// handleRunChart handles GET /v1/runs/{id}/chart
func (s *HTTPServer) handleRunChart(w http.ResponseWriter, _ *http.Request, runID string) {
	rec, ok := s.store.Get(runID)
	if !ok {
		s.writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if rec.Run.Result == nil || len(rec.Run.Result.History) == 0 {
		s.writeError(w, http.StatusPreconditionFailed, "chart not available")
		return
	}

	var buf bytes.Buffer
	if err := report.RenderChart(&buf, rec.Run.Result.History); err != nil {
		logger.Error("failed to render chart", "run_id", runID, "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Warn("failed to write chart", "run_id", runID, "error", err)
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}

func unixMs(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// convertRunToJSON is the run shape shared by the HTTP and gRPC APIs
func convertRunToJSON(run *models.Run) map[string]any {
	out := map[string]any{
		"id":                 run.ID,
		"status":             string(run.Status),
		"task_type":          string(run.TaskType),
		"created_at_unix_ms": unixMs(run.CreatedAt),
		"started_at_unix_ms": unixMs(run.StartTime),
		"ended_at_unix_ms":   unixMs(run.EndTime),
		"error":              run.Error,
	}
	if run.Result != nil {
		out["result"] = run.Result
	}
	if run.Summary != nil {
		out["summary"] = run.Summary
	}
	return out
}
