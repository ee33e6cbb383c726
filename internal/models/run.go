package models

import "fmt"

// Mode selects how a batch is executed.
type Mode string

const (
	ModeSequential Mode = "sequential"
	ModeParallel   Mode = "parallel"
	ModeBenchmark  Mode = "benchmark"
)

// ParseMode validates a mode token from the API.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeSequential, ModeParallel, ModeBenchmark:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown mode: %q", s)
	}
}

// RunStatus is the lifecycle status of a batch run.
type RunStatus string

const (
	RunStatusPending  RunStatus = "pending"
	RunStatusRunning  RunStatus = "running"
	RunStatusComplete RunStatus = "complete"
	RunStatusError    RunStatus = "error"
)

// BatchRun tracks one submitted batch through its lifecycle.
type BatchRun struct {
	ID         string    `json:"id"`
	Files      []string  `json:"files"`
	Mode       Mode      `json:"mode"`
	Status     RunStatus `json:"status"`
	Progress   float64   `json:"progress"` // 0-100
	ElapsedMs  int64     `json:"elapsedMs,omitempty"`
	StartedAt  int64     `json:"startedAt,omitempty"`  // Unix ms
	FinishedAt int64     `json:"finishedAt,omitempty"` // Unix ms
	Error      string    `json:"error,omitempty"`
}

// NewBatchRun creates a run in pending status.
func NewBatchRun(id string, files []string, mode Mode) *BatchRun {
	return &BatchRun{
		ID:     id,
		Files:  files,
		Mode:   mode,
		Status: RunStatusPending,
	}
}

// RunRecord is the persisted summary of a completed run.
type RunRecord struct {
	ID         string `json:"id"`
	CreatedAt  int64  `json:"createdAt"` // Unix ms
	FileList   string `json:"fileList"`
	Mode       string `json:"mode"`
	ElapsedMs  int64  `json:"elapsedMs"`
	Status     string `json:"status"` // success | partial | error
	Report     string `json:"report"`
	ReportPath string `json:"reportPath,omitempty"`
}
