package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/file-processor/backend/internal/models"
	"github.com/file-processor/backend/internal/parser"
	"github.com/file-processor/backend/internal/report"
)

// MaxRuns limits retained runs to prevent memory exhaustion.
const MaxRuns = 20

// RunMaxAge is how long to keep finished runs before cleanup.
const RunMaxAge = 30 * time.Minute

// HistorySink receives the persisted summary of every finished run.
type HistorySink interface {
	SaveRun(rec *models.RunRecord) error
}

// RunState holds a run's metadata and its results once available.
type RunState struct {
	Run        *models.BatchRun
	Batch      *models.BatchResult
	Benchmark  *models.BenchmarkReport
	Report     string
	LastAccess time.Time
}

// Manager owns batch runs: it starts them in background goroutines,
// tracks their lifecycle, and hands finished summaries to the history sink.
type Manager struct {
	mu         sync.RWMutex
	runs       map[string]*RunState
	registry   *parser.Registry
	timeout    time.Duration
	history    HistorySink
	reportsDir string
}

// NewManager creates a run manager. history may be nil (no persistence);
// reportsDir may be empty (no on-disk report artifacts).
func NewManager(reg *parser.Registry, perWorkerTimeout time.Duration, history HistorySink, reportsDir string) *Manager {
	if perWorkerTimeout <= 0 {
		perWorkerTimeout = DefaultWorkerTimeout
	}
	return &Manager{
		runs:       make(map[string]*RunState),
		registry:   reg,
		timeout:    perWorkerTimeout,
		history:    history,
		reportsDir: reportsDir,
	}
}

// StartRun begins processing a batch in the background and returns the run
// in pending/running state. files may be empty for benchmark runs.
func (m *Manager) StartRun(files []string, mode models.Mode) (*models.BatchRun, error) {
	m.evictIfAtCapacity()

	runID := uuid.New().String()
	run := models.NewBatchRun(runID, files, mode)
	run.Status = models.RunStatusRunning
	run.StartedAt = time.Now().UnixMilli()

	m.mu.Lock()
	m.runs[runID] = &RunState{Run: run, LastAccess: time.Now()}
	m.mu.Unlock()

	go m.execute(runID, files, mode)

	return run, nil
}

func (m *Manager) execute(runID string, files []string, mode models.Mode) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Run %s] PANIC recovered: %v\n", shortID(runID), r)
			m.failRun(runID, fmt.Sprintf("run panicked: %v", r))
		}
	}()

	start := time.Now()
	fmt.Printf("[Run %s] Starting %s run over %d files\n", shortID(runID), mode, len(files))

	tasks := make([]models.FileTask, 0, len(files))
	for _, f := range files {
		tasks = append(tasks, models.NewFileTask(f))
	}

	m.setProgress(runID, 10)

	var batch *models.BatchResult
	var bench *models.BenchmarkReport
	switch mode {
	case models.ModeSequential:
		batch = SequentialBatch(m.registry, tasks)
	case models.ModeParallel:
		batch = NewCoordinator(m.registry).WithTimeout(m.timeout).Run(tasks)
	case models.ModeBenchmark:
		bench = RunBenchmark(m.registry, tasks, m.timeout)
		batch = bench.Parallel
	default:
		m.failRun(runID, fmt.Sprintf("unknown mode: %s", mode))
		return
	}

	m.setProgress(runID, 90)

	var text, status string
	if bench != nil {
		text = report.RenderBenchmark(bench)
		status = report.BenchmarkStatus(bench)
	} else {
		text = report.Render(batch)
		status = report.DeriveStatus(batch)
	}

	reportPath := m.writeReportArtifact(runID, text)

	elapsed := time.Since(start).Milliseconds()
	fmt.Printf("[Run %s] Complete: status=%s files=%d elapsed=%dms\n",
		shortID(runID), status, len(files), elapsed)

	if m.history != nil {
		rec := &models.RunRecord{
			ID:         runID,
			CreatedAt:  time.Now().UnixMilli(),
			FileList:   fileListDisplay(files),
			Mode:       string(mode),
			ElapsedMs:  elapsed,
			Status:     status,
			Report:     text,
			ReportPath: reportPath,
		}
		if err := m.history.SaveRun(rec); err != nil {
			fmt.Printf("[Run %s] Warning: failed to persist run: %v\n", shortID(runID), err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.runs[runID]
	if !ok {
		return
	}
	state.Batch = batch
	state.Benchmark = bench
	state.Report = text
	state.Run.Status = models.RunStatusComplete
	state.Run.Progress = 100
	state.Run.ElapsedMs = elapsed
	state.Run.FinishedAt = time.Now().UnixMilli()
}

// writeReportArtifact stores the rendered report on disk when a reports
// directory is configured. Returns the written path or "".
func (m *Manager) writeReportArtifact(runID, text string) string {
	if m.reportsDir == "" {
		return ""
	}
	path := filepath.Join(m.reportsDir, fmt.Sprintf("run_%s.txt", runID))
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		fmt.Printf("[Run %s] Warning: failed to write report artifact: %v\n", shortID(runID), err)
		return ""
	}
	return path
}

func (m *Manager) setProgress(runID string, progress float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state, ok := m.runs[runID]; ok {
		state.Run.Progress = progress
	}
}

func (m *Manager) failRun(runID, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.runs[runID]
	if !ok {
		return
	}
	state.Run.Status = models.RunStatusError
	state.Run.Error = reason
	state.Run.FinishedAt = time.Now().UnixMilli()
}

// GetRun returns a run's lifecycle view and refreshes its keep-alive stamp.
func (m *Manager) GetRun(id string) (*models.BatchRun, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.runs[id]
	if !ok {
		return nil, false
	}
	state.LastAccess = time.Now()
	return state.Run, true
}

// GetState returns the full state for a run, including results when done.
func (m *Manager) GetState(id string) (*RunState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, ok := m.runs[id]
	if !ok {
		return nil, false
	}
	state.LastAccess = time.Now()
	return state, true
}

// evictIfAtCapacity removes finished runs, oldest access first, to stay
// under MaxRuns.
func (m *Manager) evictIfAtCapacity() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.runs) < MaxRuns {
		return
	}

	toFree := len(m.runs) - MaxRuns + 1
	for id, state := range m.runs {
		if toFree == 0 {
			break
		}
		if state.Run.Status == models.RunStatusComplete || state.Run.Status == models.RunStatusError {
			delete(m.runs, id)
			toFree--
			fmt.Printf("[Manager] Evicted finished run %s to free memory\n", shortID(id))
		}
	}
}

// CleanupOldRuns removes finished runs that have not been accessed within
// maxAge.
func (m *Manager) CleanupOldRuns(maxAge time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	for id, state := range m.runs {
		if state.Run.Status != models.RunStatusComplete && state.Run.Status != models.RunStatusError {
			continue
		}
		if state.LastAccess.Before(cutoff) {
			delete(m.runs, id)
			fmt.Printf("[Manager] Cleaned up aged run %s\n", shortID(id))
		}
	}
}

func fileListDisplay(files []string) string {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}
	return strings.Join(names, ", ")
}

// shortID safely truncates an ID for logging.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
