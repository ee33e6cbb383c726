// Package models contains domain types for the file processor backend.
package models

import (
	"path/filepath"
	"strings"
)

// FileFormat identifies the format of an input file, inferred from its extension.
type FileFormat string

const (
	FormatCSV     FileFormat = "csv"
	FormatJSON    FileFormat = "json"
	FormatLog     FileFormat = "log"
	FormatUnknown FileFormat = "unknown"
)

// FormatFromPath infers the file format from the path extension.
func FormatFromPath(path string) FileFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".json":
		return FormatJSON
	case ".log", ".txt":
		return FormatLog
	default:
		return FormatUnknown
	}
}

// FileTask is one file submitted for processing. It is created when a batch
// is submitted and consumed by exactly one worker (or the sequential loop).
type FileTask struct {
	Path   string     `json:"path"`
	Format FileFormat `json:"format"`
}

// NewFileTask builds a task for a path, inferring its format.
func NewFileTask(path string) FileTask {
	return FileTask{Path: path, Format: FormatFromPath(path)}
}
