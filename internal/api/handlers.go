// Package api exposes the batch processing engine over HTTP.
package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/file-processor/backend/internal/engine"
	"github.com/file-processor/backend/internal/history"
	"github.com/file-processor/backend/internal/models"
	"github.com/file-processor/backend/internal/report"
)

// Handler handles API requests.
type Handler struct {
	runs    *engine.Manager
	history *history.Store
	version string
}

// NewHandler creates a new API handler. history may be nil when persistence
// is disabled.
func NewHandler(runs *engine.Manager, hist *history.Store, version string) *Handler {
	return &Handler{runs: runs, history: hist, version: version}
}

// HandleHealth returns server health status.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"version": h.version,
	})
}

// processRequest is the batch submission payload.
type processRequest struct {
	Files []string `json:"files"`
	Mode  string   `json:"mode"`
}

// HandleProcess starts a batch run and returns its ID for polling.
func (h *Handler) HandleProcess(c echo.Context) error {
	var req processRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
	}

	mode, err := models.ParseMode(req.Mode)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	run, err := h.runs.StartRun(req.Files, mode)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("failed to start run: %v", err)})
	}
	return c.JSON(http.StatusAccepted, run)
}

// HandleRunStatus returns the lifecycle view of a run.
func (h *Handler) HandleRunStatus(c echo.Context) error {
	run, ok := h.runs.GetRun(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	}
	return c.JSON(http.StatusOK, run)
}

// runResultResponse bundles everything a finished run produced.
type runResultResponse struct {
	Run       *models.BatchRun        `json:"run"`
	Status    string                  `json:"status"`
	Batch     *models.BatchResult     `json:"batch,omitempty"`
	Benchmark *models.BenchmarkReport `json:"benchmark,omitempty"`
	Report    string                  `json:"report,omitempty"`
}

func (h *Handler) runResult(c echo.Context) (*runResultResponse, error) {
	state, ok := h.runs.GetState(c.Param("id"))
	if !ok {
		return nil, c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	}
	if state.Run.Status != models.RunStatusComplete && state.Run.Status != models.RunStatusError {
		return nil, c.JSON(http.StatusConflict, map[string]string{"error": "run not finished"})
	}

	resp := &runResultResponse{
		Run:       state.Run,
		Batch:     state.Batch,
		Benchmark: state.Benchmark,
		Report:    state.Report,
	}
	switch {
	case state.Run.Status == models.RunStatusError:
		resp.Status = report.StatusError
	case state.Benchmark != nil:
		resp.Status = report.BenchmarkStatus(state.Benchmark)
	default:
		resp.Status = report.DeriveStatus(state.Batch)
	}
	return resp, nil
}

// HandleRunResult returns the structured result of a finished run as JSON.
func (h *Handler) HandleRunResult(c echo.Context) error {
	resp, err := h.runResult(c)
	if resp == nil {
		return err
	}
	return c.JSON(http.StatusOK, resp)
}

// HandleRunResultBinary returns the result encoded as msgpack, which is
// considerably smaller for batches with many line errors.
func (h *Handler) HandleRunResultBinary(c echo.Context) error {
	resp, err := h.runResult(c)
	if resp == nil {
		return err
	}
	packed, err := msgpack.Marshal(resp)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("failed to encode result: %v", err)})
	}
	return c.Blob(http.StatusOK, "application/x-msgpack", packed)
}

// HandleListRuns returns persisted run history, newest first.
func (h *Handler) HandleListRuns(c echo.Context) error {
	if h.history == nil {
		return c.JSON(http.StatusOK, []models.RunRecord{})
	}
	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	records, err := h.history.ListRuns(limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to list runs"})
	}
	return c.JSON(http.StatusOK, records)
}

// HandleGetRunRecord returns one persisted run record.
func (h *Handler) HandleGetRunRecord(c echo.Context) error {
	if h.history == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "persistence disabled"})
	}
	rec, err := h.history.GetRun(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load run"})
	}
	if rec == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "run not found"})
	}
	return c.JSON(http.StatusOK, rec)
}
