package engine

import (
	"time"

	"github.com/file-processor/backend/internal/models"
	"github.com/file-processor/backend/internal/parser"
)

// RunBenchmark runs the same task list through the sequential path and the
// coordinator and compares wall-clock times. Zero-file and single-file
// batches are valid inputs.
func RunBenchmark(reg *parser.Registry, tasks []models.FileTask, perWorkerTimeout time.Duration) *models.BenchmarkReport {
	seq := SequentialBatch(reg, tasks)
	par := NewCoordinator(reg).WithTimeout(perWorkerTimeout).Run(tasks)
	return CompareBatches(seq, par)
}

// CompareBatches computes the comparative statistics for two timed runs.
func CompareBatches(seq, par *models.BatchResult) *models.BenchmarkReport {
	report := &models.BenchmarkReport{
		SequentialMs: seq.ElapsedMs,
		ParallelMs:   par.ElapsedMs,
		Sequential:   seq,
		Parallel:     par,
	}
	if par.ElapsedMs > 0 {
		report.ImprovementFactor = float64(seq.ElapsedMs) / float64(par.ElapsedMs)
	}
	if seq.ElapsedMs > 0 {
		report.PercentFaster = float64(seq.ElapsedMs-par.ElapsedMs) / float64(seq.ElapsedMs) * 100
	}
	saved := seq.ElapsedMs - par.ElapsedMs
	if saved < 0 {
		saved = -saved
	}
	report.TimeSavedMs = saved
	return report
}
