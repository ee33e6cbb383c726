// Package parser implements the per-format parse and validation pipelines.
package parser

import (
	"math"
	"strconv"
	"strings"

	"github.com/file-processor/backend/internal/models"
)

// Parser is the interface implemented by each file format parser.
type Parser interface {
	// Name returns the unique name of the parser.
	Name() string
	// Format returns the file format this parser handles.
	Format() models.FileFormat
	// Parse maps raw file content to a ProcessingResult. Malformed input is
	// represented in the result (partial or failure outcome), never as a
	// panic; the File field is left for the caller to fill in.
	Parse(data []byte) models.ProcessingResult
}

// maxScannerBuffer raises the line scanner limit for large files
// (1MB instead of the default 64KB).
const maxScannerBuffer = 1024 * 1024 // 1MB

// Common utilities for parsing

// leadingFloat parses the longest numeric prefix of s as a float.
// "19.99USD" parses as 19.99. This leniency is intentional: upstream
// exports routinely append currency or unit suffixes to numeric columns.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	dots := 0
	for i < len(s) {
		c := s[i]
		if c >= '0' && c <= '9' {
			digits++
		} else if c == '.' && dots == 0 {
			dots++
		} else {
			break
		}
		i++
	}
	if digits == 0 {
		return 0, false
	}
	prefix := strings.TrimSuffix(s[:i], ".")
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// leadingInt parses the longest decimal digit prefix of s as an integer,
// after an optional sign.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	start := i
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:i])
	if err != nil {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}

// roundCurrency rounds to 2 decimals, half away from zero.
func roundCurrency(v float64) float64 {
	return math.Round(v*100) / 100
}

// Truncate cuts s to at most n bytes for error snippets.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
