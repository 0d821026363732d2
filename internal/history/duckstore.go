package history

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/marcboeker/go-duckdb"
	"github.com/mglucas0123/JavaCraft-Dev/internal/models"
)

// Store persists completed conversions.
type Store interface {
	Record(ctx context.Context, rec *models.ConversionRecord) error
	Get(ctx context.Context, id string) (*models.ConversionRecord, error)
	Recent(ctx context.Context, limit int) ([]*models.ConversionRecord, error)
	Close() error
}

// DuckStore is a DuckDB-backed conversion history. Converted output can be
// much larger than its metadata, so history survives restarts on disk
// instead of living in process memory.
type DuckStore struct {
	mu     sync.Mutex
	db     *sql.DB
	dbPath string
}

// NewDuckStore opens (or creates) the history database at dbPath.
func NewDuckStore(dbPath string) (*DuckStore, error) {
	fmt.Printf("[History] Opening database at: %s\n", dbPath)

	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='256MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				fmt.Printf("[History] Pragma warning: %v\n", err)
				// Non-fatal - continue even if pragma fails
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			id             VARCHAR PRIMARY KEY,
			class_name     VARCHAR NOT NULL,
			namespace      VARCHAR,
			archetype      VARCHAR NOT NULL,
			part_count     INTEGER NOT NULL,
			source_size    INTEGER NOT NULL,
			output_size    INTEGER NOT NULL,
			converted_code VARCHAR NOT NULL,
			notes          VARCHAR,
			created_at     BIGINT NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	fmt.Printf("[History] Initialization complete\n")
	return &DuckStore{db: db, dbPath: dbPath}, nil
}

// Record inserts one completed conversion.
func (ds *DuckStore) Record(ctx context.Context, rec *models.ConversionRecord) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	_, err := ds.db.ExecContext(ctx, `
		INSERT INTO conversions
			(id, class_name, namespace, archetype, part_count, source_size, output_size, converted_code, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		rec.ID,
		rec.ClassName,
		rec.Namespace,
		string(rec.Archetype),
		rec.PartCount,
		rec.SourceSize,
		rec.OutputSize,
		rec.ConvertedCode,
		encodeNotes(rec.Notes),
		rec.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert failed: %w", err)
	}
	return nil
}

// Get returns one conversion by ID, including the converted code.
func (ds *DuckStore) Get(ctx context.Context, id string) (*models.ConversionRecord, error) {
	row := ds.db.QueryRowContext(ctx, `
		SELECT id, class_name, namespace, archetype, part_count, source_size, output_size, converted_code, notes, created_at
		FROM conversions WHERE id = ?
	`, id)

	rec, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("conversion not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	return rec, nil
}

// Recent returns the newest conversions, metadata only. The converted code
// is omitted; fetch a single record to get it.
func (ds *DuckStore) Recent(ctx context.Context, limit int) ([]*models.ConversionRecord, error) {
	rows, err := ds.db.QueryContext(ctx, `
		SELECT id, class_name, namespace, archetype, part_count, source_size, output_size, '', notes, created_at
		FROM conversions ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var records []*models.ConversionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the database. The file is kept; history is persistent.
func (ds *DuckStore) Close() error {
	if ds.db != nil {
		return ds.db.Close()
	}
	return nil
}

// Notes are short repair messages without newlines, so a newline join is a
// safe flat encoding.
func encodeNotes(notes []string) string {
	return strings.Join(notes, "\n")
}

func decodeNotes(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row scanner) (*models.ConversionRecord, error) {
	var rec models.ConversionRecord
	var archetype string
	var namespace, code, notes sql.NullString
	var createdMs int64

	err := row.Scan(&rec.ID, &rec.ClassName, &namespace, &archetype, &rec.PartCount,
		&rec.SourceSize, &rec.OutputSize, &code, &notes, &createdMs)
	if err != nil {
		return nil, err
	}

	rec.Namespace = namespace.String
	rec.Archetype = models.Archetype(archetype)
	rec.ConvertedCode = code.String
	rec.Notes = decodeNotes(notes.String)
	rec.CreatedAt = time.UnixMilli(createdMs)
	return &rec, nil
}
