// Package engine runs batches of file tasks sequentially or in parallel.
package engine

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/file-processor/backend/internal/models"
	"github.com/file-processor/backend/internal/parser"
)

// ProcessFile runs the full parse-and-validate pipeline for one file. The
// sequential path and the parallel workers both call this, so a file's
// result depends only on its bytes and extension, never on execution mode.
func ProcessFile(reg *parser.Registry, task models.FileTask) models.ProcessingResult {
	p, ok := reg.ForFormat(task.Format)
	if !ok {
		ext := filepath.Ext(task.Path)
		if ext == "" {
			ext = "(none)"
		}
		return models.FailureResult(task, fmt.Sprintf("unsupported file type: %s", ext))
	}

	data, err := os.ReadFile(task.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.FailureResult(task, fmt.Sprintf("file not found: %s", task.Path))
		}
		return models.FailureResult(task, fmt.Sprintf("failed to read %s: %v", task.Path, err))
	}

	res := p.Parse(data)
	res.File = task.Path
	return res
}
