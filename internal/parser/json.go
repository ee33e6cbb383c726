package parser

import (
	"encoding/json"
	"fmt"

	"github.com/file-processor/backend/internal/models"
)

// JSONSnapshotParser handles JSON user/session snapshots: a single object
// with optional "usuarios" and "sesiones" arrays. Missing arrays default to
// empty; a document-level decode error is a whole-file failure.
type JSONSnapshotParser struct{}

func NewJSONSnapshotParser() *JSONSnapshotParser {
	return &JSONSnapshotParser{}
}

func (p *JSONSnapshotParser) Name() string {
	return "json_snapshot"
}

func (p *JSONSnapshotParser) Format() models.FileFormat {
	return models.FormatJSON
}

func (p *JSONSnapshotParser) Parse(data []byte) models.ProcessingResult {
	res := models.ProcessingResult{Format: models.FormatJSON}

	var doc struct {
		Usuarios []map[string]interface{} `json:"usuarios"`
		Sesiones []json.RawMessage        `json:"sesiones"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		metrics := &models.JSONMetrics{ErrorMessage: err.Error()}
		switch e := err.(type) {
		case *json.SyntaxError:
			metrics.ErrorType = "syntax"
			metrics.ErrorOffset = e.Offset
		case *json.UnmarshalTypeError:
			metrics.ErrorType = "type"
			metrics.ErrorOffset = e.Offset
		default:
			metrics.ErrorType = "decode"
		}
		res.JSON = metrics
		res.Outcome = models.OutcomeFailure
		res.Reason = fmt.Sprintf("invalid JSON at offset %d: %s", metrics.ErrorOffset, metrics.ErrorMessage)
		return res
	}

	active := 0
	for _, user := range doc.Usuarios {
		// Only a literal boolean true counts as active; "activo": "yes"
		// or "activo": 1 does not.
		if v, ok := user["activo"].(bool); ok && v {
			active++
		}
	}

	res.JSON = &models.JSONMetrics{
		TotalUsers:    len(doc.Usuarios),
		ActiveUsers:   active,
		TotalSessions: len(doc.Sesiones),
	}
	res.Outcome = models.OutcomeSuccess
	return res
}
