package engine

import (
	"fmt"

	"github.com/file-processor/backend/internal/models"
)

// processFunc runs the pipeline for one task. The coordinator holds one so
// tests can substitute slow or faulty workers.
type processFunc func(models.FileTask) models.ProcessingResult

// resultMsg is one worker's delivery to the coordinator, tagged with the
// originating task index so results can be re-associated no matter the
// arrival order.
type resultMsg struct {
	index  int
	result models.ProcessingResult
}

// runWorker processes a single task and delivers exactly one message. A
// panic inside the pipeline is caught here and converted into a failure
// result, so one corrupt file can never take down the coordinator or
// sibling workers.
func runWorker(process processFunc, index int, task models.FileTask, out chan<- resultMsg) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Worker %d] PANIC recovered: %v\n", index, r)
			out <- resultMsg{
				index:  index,
				result: models.FailureResult(task, fmt.Sprintf("worker panicked: %v", r)),
			}
		}
	}()

	out <- resultMsg{index: index, result: process(task)}
}
