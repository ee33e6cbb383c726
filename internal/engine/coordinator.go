package engine

import (
	"fmt"
	"time"

	"github.com/file-processor/backend/internal/models"
	"github.com/file-processor/backend/internal/parser"
)

// DefaultWorkerTimeout bounds how long the coordinator waits for each
// result before synthesizing a timeout failure.
const DefaultWorkerTimeout = 10 * time.Second

// Coordinator fans a batch out to one worker per file and collects the
// results within a per-worker timeout budget. Timeouts are best-effort:
// a timed-out worker keeps running in the background and its late result,
// if any, is discarded.
type Coordinator struct {
	process processFunc
	timeout time.Duration
}

// NewCoordinator builds a coordinator running the standard pipeline.
func NewCoordinator(reg *parser.Registry) *Coordinator {
	return &Coordinator{
		process: func(task models.FileTask) models.ProcessingResult {
			return ProcessFile(reg, task)
		},
		timeout: DefaultWorkerTimeout,
	}
}

// WithTimeout overrides the per-worker timeout.
func (c *Coordinator) WithTimeout(d time.Duration) *Coordinator {
	if d > 0 {
		c.timeout = d
	}
	return c
}

// Run dispatches one worker per task, all before any result is awaited,
// then collects N results into per-task slots. Each wait for the next
// result is bounded by the per-worker timeout; when a wait expires the
// lowest-indexed task still outstanding is recorded as a timeout failure.
// The assembled BatchResult follows the original submission order, never
// the arrival order, and always contains exactly len(tasks) results.
func (c *Coordinator) Run(tasks []models.FileTask) *models.BatchResult {
	start := time.Now()
	slots := make([]*models.ProcessingResult, len(tasks))
	// Buffered to task count so late workers never block on delivery.
	msgs := make(chan resultMsg, len(tasks))

	for i, task := range tasks {
		go runWorker(c.process, i, task, msgs)
	}

	for remaining := len(tasks); remaining > 0; {
		select {
		case msg := <-msgs:
			if slots[msg.index] != nil {
				// Late result for a slot already synthesized as a timeout.
				// Discarding keeps attribution correct for every file.
				fmt.Printf("[Coordinator] discarding late result for %s\n", msg.result.File)
				continue
			}
			slots[msg.index] = &msg.result
			remaining--
		case <-time.After(c.timeout):
			idx := firstOutstanding(slots)
			res := models.FailureResult(tasks[idx],
				fmt.Sprintf("worker timeout after %dms", c.timeout.Milliseconds()))
			slots[idx] = &res
			remaining--
		}
	}

	results := make([]models.ProcessingResult, len(tasks))
	for i, r := range slots {
		results[i] = *r
	}
	return models.NewBatchResult(results, time.Since(start).Milliseconds())
}

func firstOutstanding(slots []*models.ProcessingResult) int {
	for i, r := range slots {
		if r == nil {
			return i
		}
	}
	return -1
}
