package models

// CSVMetrics aggregates a CSV sales file.
type CSVMetrics struct {
	ValidRecords   int     `json:"validRecords"`
	InvalidRecords int     `json:"invalidRecords"`
	TotalLines     int     `json:"totalLines"`
	TotalSales     float64 `json:"totalSales"`
	UniqueProducts int     `json:"uniqueProducts"`
}

// JSONMetrics aggregates a JSON user/session snapshot. On a structural
// decode failure the Error fields are populated instead of the counts.
type JSONMetrics struct {
	TotalUsers    int    `json:"totalUsers"`
	ActiveUsers   int    `json:"activeUsers"`
	TotalSessions int    `json:"totalSessions"`
	ErrorType     string `json:"errorType,omitempty"`
	ErrorOffset   int64  `json:"errorOffset,omitempty"`
	ErrorMessage  string `json:"errorMessage,omitempty"`
}

// LogLevels are the recognized log level tokens, in severity order.
var LogLevels = []string{"DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// LogMetrics aggregates a line-oriented log file. Blank lines are ignored
// entirely and never counted.
type LogMetrics struct {
	TotalLines   int            `json:"totalLines"`
	ValidLines   int            `json:"validLines"`
	InvalidLines int            `json:"invalidLines"`
	LevelCounts  map[string]int `json:"levelCounts"`
}

// NewLogMetrics returns metrics with every level count present at zero.
func NewLogMetrics() *LogMetrics {
	counts := make(map[string]int, len(LogLevels))
	for _, lvl := range LogLevels {
		counts[lvl] = 0
	}
	return &LogMetrics{LevelCounts: counts}
}
