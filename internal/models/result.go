package models

// Outcome is the per-file processing outcome.
type Outcome string

const (
	// OutcomeSuccess means every line/record validated.
	OutcomeSuccess Outcome = "success"
	// OutcomePartial means the file was readable and at least one record was
	// invalid while at least one other was valid.
	OutcomePartial Outcome = "partial"
	// OutcomeFailure means the file could not be processed at all: I/O error,
	// structurally invalid content, unsupported extension, worker timeout, or
	// no valid records.
	OutcomeFailure Outcome = "failure"
)

// LineError is one invalid line or record within an otherwise-processed file.
// Line numbers start at 1 and are relative to data lines.
type LineError struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
	Reason  string `json:"reason"`
}

// ProcessingResult is the complete outcome for one file. Exactly one of the
// metrics pointers is set, matching Format; all three are nil when the file
// failed before parsing (missing file, unsupported extension, timeout).
type ProcessingResult struct {
	File    string     `json:"file"`
	Format  FileFormat `json:"format"`
	Outcome Outcome    `json:"outcome"`
	// Reason describes a whole-file failure; empty for success.
	Reason string       `json:"reason,omitempty"`
	CSV    *CSVMetrics  `json:"csv,omitempty"`
	JSON   *JSONMetrics `json:"json,omitempty"`
	Log    *LogMetrics  `json:"log,omitempty"`
	// Errors lists invalid lines in ascending line order.
	Errors []LineError `json:"errors,omitempty"`
}

// FailureResult builds a whole-file failure for a task.
func FailureResult(task FileTask, reason string) ProcessingResult {
	return ProcessingResult{
		File:    task.Path,
		Format:  task.Format,
		Outcome: OutcomeFailure,
		Reason:  reason,
	}
}
