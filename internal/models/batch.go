package models

// BatchResult is the complete per-file outcome set for one batch submission.
// Results are ordered by original submission order, not by arrival order.
type BatchResult struct {
	Results      []ProcessingResult `json:"results"`
	SuccessCount int                `json:"successCount"`
	PartialCount int                `json:"partialCount"`
	ErrorCount   int                `json:"errorCount"`
	ElapsedMs    int64              `json:"elapsedMs"`
}

// NewBatchResult assembles a batch from per-file results (already in
// submission order) and computes the aggregate counters.
func NewBatchResult(results []ProcessingResult, elapsedMs int64) *BatchResult {
	b := &BatchResult{Results: results, ElapsedMs: elapsedMs}
	for _, r := range results {
		switch r.Outcome {
		case OutcomeSuccess:
			b.SuccessCount++
		case OutcomePartial:
			b.PartialCount++
		case OutcomeFailure:
			b.ErrorCount++
		}
	}
	return b
}

// ResultFor returns the result for a file path, or nil if the path was not
// part of the batch.
func (b *BatchResult) ResultFor(path string) *ProcessingResult {
	for i := range b.Results {
		if b.Results[i].File == path {
			return &b.Results[i]
		}
	}
	return nil
}

// BenchmarkReport compares sequential and parallel runs over the same files.
type BenchmarkReport struct {
	SequentialMs int64 `json:"sequentialMs"`
	ParallelMs   int64 `json:"parallelMs"`
	// ImprovementFactor is sequential/parallel; 0 when parallel took 0ms.
	ImprovementFactor float64      `json:"improvementFactor"`
	PercentFaster     float64      `json:"percentFaster"`
	TimeSavedMs       int64        `json:"timeSavedMs"`
	Sequential        *BatchResult `json:"sequential,omitempty"`
	Parallel          *BatchResult `json:"parallel,omitempty"`
}
