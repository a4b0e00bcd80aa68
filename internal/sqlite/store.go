// Package sqlite stores enumerated models in SQLite so exports can be
// queried after the model is closed. Each export gets a UUID v7 ID; its
// elements are stored as JSON alongside their type code and name.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/ifcmodel/pkg/types"
)

// ErrExportNotFound is returned when an export ID is not in the store.
var ErrExportNotFound = errors.New("export not found")

// Export describes one stored export.
type Export struct {
	ExportID     string    `json:"export_id" yaml:"export_id"`
	Source       string    `json:"source" yaml:"source"`
	ElementCount int       `json:"element_count" yaml:"element_count"`
	Skipped      int       `json:"skipped" yaml:"skipped"`
	CreatedAt    time.Time `json:"created_at" yaml:"created_at"`
}

// Store is an SQLite export store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and ensures the schema exists.
// The parent directory is created if needed.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	// Pragmas in the DSN apply to every pooled connection.
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, err
	}
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("creating schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// newExportID generates a UUID v7 string.
func newExportID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}

// SaveExport stores every element of res under a new export ID in a single
// transaction and returns the ID.
func (s *Store) SaveExport(source string, res *types.EnumerationResult) (string, error) {
	exportID := newExportID()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("beginning export transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO exports (export_id, source, element_count, skipped, created_at) VALUES (?, ?, ?, ?, ?)`,
		exportID, source, len(res.Elements), res.Skipped, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("inserting export: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO elements (export_id, express_id, type_code, type_name, data) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing element insert: %w", err)
	}
	defer stmt.Close()

	for _, id := range types.SortedIDs(res.Elements) {
		elt := res.Elements[id]
		data, err := json.Marshal(elt)
		if err != nil {
			return "", fmt.Errorf("marshaling element %d: %w", id, err)
		}
		code, _ := elt.TypeCode()
		var typeName sql.NullString
		if name, ok := elt[types.KeyTypeName].(string); ok {
			typeName = sql.NullString{String: name, Valid: true}
		}
		if _, err := stmt.Exec(exportID, id, int64(code), typeName, string(data)); err != nil {
			return "", fmt.Errorf("inserting element %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing export: %w", err)
	}
	return exportID, nil
}

// Exports lists stored exports, oldest first.
func (s *Store) Exports() ([]Export, error) {
	rows, err := s.db.Query(`SELECT export_id, source, element_count, skipped, created_at FROM exports ORDER BY created_at, export_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exports []Export
	for rows.Next() {
		var (
			e         Export
			createdAt string
		)
		if err := rows.Scan(&e.ExportID, &e.Source, &e.ElementCount, &e.Skipped, &createdAt); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("parsing created_at for %s: %w", e.ExportID, err)
		}
		exports = append(exports, e)
	}
	return exports, rows.Err()
}

// Element returns one stored element. Returns types.ErrLineNotFound if the
// export does not hold id.
func (s *Store) Element(exportID string, id int) (types.Element, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM elements WHERE export_id = ? AND express_id = ?`, exportID, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		if err := s.checkExport(exportID); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("line %d: %w", id, types.ErrLineNotFound)
	}
	if err != nil {
		return nil, err
	}
	return types.DecodeElement([]byte(data))
}

// Elements returns every stored element of an export in ascending express
// ID order.
func (s *Store) Elements(exportID string) ([]types.Element, error) {
	if err := s.checkExport(exportID); err != nil {
		return nil, err
	}
	return s.queryElements(`SELECT data FROM elements WHERE export_id = ? ORDER BY express_id`, exportID)
}

// ElementsOfType returns the stored elements labeled typeName in ascending
// express ID order.
func (s *Store) ElementsOfType(exportID, typeName string) ([]types.Element, error) {
	if err := s.checkExport(exportID); err != nil {
		return nil, err
	}
	return s.queryElements(`SELECT data FROM elements WHERE export_id = ? AND type_name = ? COLLATE NOCASE ORDER BY express_id`, exportID, typeName)
}

func (s *Store) queryElements(query string, args ...any) ([]types.Element, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var elts []types.Element
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		elt, err := types.DecodeElement([]byte(data))
		if err != nil {
			return nil, err
		}
		elts = append(elts, elt)
	}
	return elts, rows.Err()
}

// DeleteExport removes an export and its elements.
func (s *Store) DeleteExport(exportID string) error {
	res, err := s.db.Exec(`DELETE FROM exports WHERE export_id = ?`, exportID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrExportNotFound
	}
	return nil
}

func (s *Store) checkExport(exportID string) error {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM exports WHERE export_id = ?`, exportID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrExportNotFound
	}
	return err
}
