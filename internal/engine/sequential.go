package engine

import (
	"time"

	"github.com/file-processor/backend/internal/models"
	"github.com/file-processor/backend/internal/parser"
)

// RunSequential processes tasks one at a time, in input order, with the
// same pipeline the parallel workers use.
func RunSequential(reg *parser.Registry, tasks []models.FileTask) []models.ProcessingResult {
	results := make([]models.ProcessingResult, 0, len(tasks))
	for _, task := range tasks {
		results = append(results, ProcessFile(reg, task))
	}
	return results
}

// SequentialBatch wraps RunSequential in a BatchResult with aggregate
// counters and elapsed wall-clock time.
func SequentialBatch(reg *parser.Registry, tasks []models.FileTask) *models.BatchResult {
	start := time.Now()
	results := RunSequential(reg, tasks)
	return models.NewBatchResult(results, time.Since(start).Milliseconds())
}
