// Package history persists completed run summaries in a DuckDB database.
package history

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/marcboeker/go-duckdb"

	"github.com/file-processor/backend/internal/models"
)

// Store is a DuckDB-backed run history. Safe for concurrent use.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.Mutex
}

// NewStore opens (or creates) the history database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	return NewStoreAtPath(filepath.Join(dataDir, "runs.duckdb"))
}

// NewStoreAtPath opens a history database at a specific path.
func NewStoreAtPath(dbPath string) (*Store, error) {
	connector, err := duckdb.NewConnector(dbPath, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}
	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id          VARCHAR PRIMARY KEY,
			created_at  BIGINT NOT NULL,
			file_list   VARCHAR NOT NULL,
			mode        VARCHAR NOT NULL,
			elapsed_ms  BIGINT NOT NULL,
			status      VARCHAR NOT NULL,
			report      VARCHAR NOT NULL,
			report_path VARCHAR
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create runs table: %w", err)
	}

	fmt.Printf("[History] Database ready at %s\n", dbPath)
	return &Store{db: db, dbPath: dbPath}, nil
}

// SaveRun inserts one finished run record.
func (s *Store) SaveRun(rec *models.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO runs (id, created_at, file_list, mode, elapsed_ms, status, report, report_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.CreatedAt, rec.FileList, rec.Mode, rec.ElapsedMs, rec.Status, rec.Report, rec.ReportPath)
	if err != nil {
		return fmt.Errorf("failed to insert run %s: %w", rec.ID, err)
	}
	return nil
}

// ListRuns returns up to limit records, newest first.
func (s *Store) ListRuns(limit int) ([]models.RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, created_at, file_list, mode, elapsed_ms, status, report, report_path
		FROM runs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	records := make([]models.RunRecord, 0, limit)
	for rows.Next() {
		var rec models.RunRecord
		var reportPath sql.NullString
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.FileList, &rec.Mode,
			&rec.ElapsedMs, &rec.Status, &rec.Report, &reportPath); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		rec.ReportPath = reportPath.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// GetRun returns one record by ID.
func (s *Store) GetRun(id string) (*models.RunRecord, error) {
	var rec models.RunRecord
	var reportPath sql.NullString
	err := s.db.QueryRow(`
		SELECT id, created_at, file_list, mode, elapsed_ms, status, report, report_path
		FROM runs WHERE id = ?
	`, id).Scan(&rec.ID, &rec.CreatedAt, &rec.FileList, &rec.Mode,
		&rec.ElapsedMs, &rec.Status, &rec.Report, &reportPath)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", id, err)
	}
	rec.ReportPath = reportPath.String
	return &rec, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
