package parser

import (
	"bufio"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/file-processor/backend/internal/models"
)

// logLineRegex matches "2024-01-01 10:00:00 [LEVEL]" prefixes; the level
// token is case-insensitive.
var logLineRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} \[(?i:(DEBUG|INFO|WARN|ERROR|FATAL))\]`)

// LogFileParser handles line-oriented log files. Blank lines are ignored
// entirely; invalid non-blank lines are accumulated as line errors.
type LogFileParser struct{}

func NewLogFileParser() *LogFileParser {
	return &LogFileParser{}
}

func (p *LogFileParser) Name() string {
	return "log_lines"
}

func (p *LogFileParser) Format() models.FileFormat {
	return models.FormatLog
}

func (p *LogFileParser) Parse(data []byte) models.ProcessingResult {
	res := models.ProcessingResult{Format: models.FormatLog}
	metrics := models.NewLogMetrics()
	lineErrors := make([]models.LineError, 0)

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, maxScannerBuffer), maxScannerBuffer)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		metrics.TotalLines++

		m := logLineRegex.FindStringSubmatch(line)
		if m == nil {
			metrics.InvalidLines++
			lineErrors = append(lineErrors, models.LineError{
				Line:    metrics.TotalLines,
				Content: Truncate(line, 50),
				Reason:  Truncate("does not match log format", 30),
			})
			continue
		}

		metrics.ValidLines++
		metrics.LevelCounts[strings.ToUpper(m[1])]++
	}

	res.Log = metrics
	res.Errors = lineErrors

	if err := scanner.Err(); err != nil {
		res.Outcome = models.OutcomeFailure
		res.Reason = fmt.Sprintf("scan error: %v", err)
		return res
	}

	switch {
	case metrics.TotalLines == 0:
		res.Outcome = models.OutcomeFailure
		res.Reason = "empty file"
	case metrics.ValidLines == 0:
		res.Outcome = models.OutcomeFailure
		res.Reason = "no valid lines"
	case metrics.InvalidLines > 0:
		res.Outcome = models.OutcomePartial
	default:
		res.Outcome = models.OutcomeSuccess
	}
	return res
}
