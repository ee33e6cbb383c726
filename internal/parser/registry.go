package parser

import (
	"github.com/file-processor/backend/internal/models"
)

// Registry holds the format parsers and dispatches files by extension.
type Registry struct {
	parsers map[models.FileFormat]Parser
}

func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[models.FileFormat]Parser)}
	for _, p := range []Parser{
		NewCSVSalesParser(),
		NewJSONSnapshotParser(),
		NewLogFileParser(),
	} {
		r.parsers[p.Format()] = p
	}
	return r
}

// Register adds or replaces the parser for a format.
func (r *Registry) Register(p Parser) {
	r.parsers[p.Format()] = p
}

// ForFormat returns the parser for a format, if one is registered.
func (r *Registry) ForFormat(f models.FileFormat) (Parser, bool) {
	p, ok := r.parsers[f]
	return p, ok
}

// ForFile returns the parser for a file path based on its extension.
func (r *Registry) ForFile(path string) (Parser, bool) {
	return r.ForFormat(models.FormatFromPath(path))
}
