// Package report renders batch outcomes into the human-readable run report
// and derives the run status flag from structured outcome states.
package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/file-processor/backend/internal/models"
)

// Status values for a whole run.
const (
	StatusSuccess = "success"
	StatusPartial = "partial"
	StatusError   = "error"
)

// DeriveStatus computes the run status from outcome states, not from
// scanning rendered text. An empty batch is a success.
func DeriveStatus(batch *models.BatchResult) string {
	if batch == nil || len(batch.Results) == 0 {
		return StatusSuccess
	}
	switch {
	case batch.ErrorCount == len(batch.Results):
		return StatusError
	case batch.ErrorCount > 0 || batch.PartialCount > 0:
		return StatusPartial
	default:
		return StatusSuccess
	}
}

// BenchmarkStatus derives the status for a benchmark run from the parallel
// pass, which is the pass surfaced to the caller.
func BenchmarkStatus(rep *models.BenchmarkReport) string {
	if rep == nil {
		return StatusSuccess
	}
	return DeriveStatus(rep.Parallel)
}

// Render produces the per-file report text for a batch.
func Render(batch *models.BatchResult) string {
	var b strings.Builder
	b.WriteString("=== Batch Report ===\n")
	if batch == nil {
		return b.String()
	}
	fmt.Fprintf(&b, "Files: %d  Success: %d  Partial: %d  Failed: %d  Elapsed: %dms\n",
		len(batch.Results), batch.SuccessCount, batch.PartialCount, batch.ErrorCount, batch.ElapsedMs)

	for _, r := range batch.Results {
		renderResult(&b, r)
	}
	return b.String()
}

func renderResult(b *strings.Builder, r models.ProcessingResult) {
	name := filepath.Base(r.File)
	switch r.Outcome {
	case models.OutcomeSuccess:
		fmt.Fprintf(b, "[OK] %s (%s): %s\n", name, r.Format, metricsLine(r))
	case models.OutcomePartial:
		fmt.Fprintf(b, "[PARTIAL] %s (%s): %s\n", name, r.Format, metricsLine(r))
	default:
		fmt.Fprintf(b, "[FAIL] %s (%s): %s\n", name, r.Format, r.Reason)
	}
	for _, e := range r.Errors {
		fmt.Fprintf(b, "  line %d: %s | %q\n", e.Line, e.Reason, e.Content)
	}
}

func metricsLine(r models.ProcessingResult) string {
	switch {
	case r.CSV != nil:
		return fmt.Sprintf("%d valid, %d invalid, total sales %.2f, %d products",
			r.CSV.ValidRecords, r.CSV.InvalidRecords, r.CSV.TotalSales, r.CSV.UniqueProducts)
	case r.JSON != nil:
		return fmt.Sprintf("%d users (%d active), %d sessions",
			r.JSON.TotalUsers, r.JSON.ActiveUsers, r.JSON.TotalSessions)
	case r.Log != nil:
		return fmt.Sprintf("%d lines (%d valid, %d invalid), levels %s",
			r.Log.TotalLines, r.Log.ValidLines, r.Log.InvalidLines, levelSummary(r.Log))
	default:
		return "no metrics"
	}
}

func levelSummary(m *models.LogMetrics) string {
	parts := make([]string, 0, len(models.LogLevels))
	for _, lvl := range models.LogLevels {
		parts = append(parts, fmt.Sprintf("%s=%d", lvl, m.LevelCounts[lvl]))
	}
	return strings.Join(parts, " ")
}

// RenderBenchmark produces the comparison report for a benchmark run.
func RenderBenchmark(rep *models.BenchmarkReport) string {
	var b strings.Builder
	b.WriteString("=== Benchmark Report ===\n")
	if rep == nil {
		return b.String()
	}
	fmt.Fprintf(&b, "Sequential: %dms  Parallel: %dms\n", rep.SequentialMs, rep.ParallelMs)
	fmt.Fprintf(&b, "Improvement: %.2fx  Faster: %.1f%%  Saved: %dms\n",
		rep.ImprovementFactor, rep.PercentFaster, rep.TimeSavedMs)
	if rep.Parallel != nil {
		b.WriteString("\n")
		b.WriteString(Render(rep.Parallel))
	}
	return b.String()
}
