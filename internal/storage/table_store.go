package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/meridian-data/catalogd/internal/dto"
)

// ErrTableNotFound is returned when no entity matches the lookup key.
var ErrTableNotFound = errors.New("table entity not found")

const schemaDDL = `
CREATE TABLE IF NOT EXISTS table_entities (
	id         TEXT PRIMARY KEY,
	fqn        TEXT NOT NULL UNIQUE,
	name       TEXT NOT NULL,
	version    INTEGER NOT NULL,
	updated_at TEXT NOT NULL,
	document   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_table_entities_fqn ON table_entities (fqn);
`

// TableStore persists table entities as JSON documents in SQLite. The
// fully qualified name is the natural key; the UUID is stable across
// updates.
type TableStore struct {
	db *sql.DB
}

// OpenTableStore opens (and if needed creates) the store at path.
func OpenTableStore(path string) (*TableStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}
	// SQLite writes are serialized; a single connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize catalog schema: %w", err)
	}
	return &TableStore{db: db}, nil
}

func (s *TableStore) Close() error {
	return s.db.Close()
}

// Upsert writes the entity, replacing any previous document with the same
// fully qualified name.
func (s *TableStore) Upsert(ctx context.Context, table *dto.Table) error {
	doc, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode table '%s': %w", table.FullyQualifiedName, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO table_entities (id, fqn, name, version, updated_at, document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(fqn) DO UPDATE SET
			name = excluded.name,
			version = excluded.version,
			updated_at = excluded.updated_at,
			document = excluded.document`,
		table.ID, table.FullyQualifiedName, table.Name, table.Version,
		table.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"), string(doc))
	if err != nil {
		return fmt.Errorf("failed to store table '%s': %w", table.FullyQualifiedName, err)
	}
	return nil
}

// GetByID fetches an entity by its UUID.
func (s *TableStore) GetByID(ctx context.Context, id string) (*dto.Table, error) {
	return s.getOne(ctx, `SELECT document FROM table_entities WHERE id = ?`, id)
}

// GetByName fetches an entity by its fully qualified name.
func (s *TableStore) GetByName(ctx context.Context, fqn string) (*dto.Table, error) {
	return s.getOne(ctx, `SELECT document FROM table_entities WHERE fqn = ?`, fqn)
}

func (s *TableStore) getOne(ctx context.Context, query, key string) (*dto.Table, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, query, key).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load table '%s': %w", key, err)
	}
	return decodeDocument(doc)
}

// List returns one page of entities ordered by fully qualified name.
// The after cursor is the FQN of the last entity of the previous page.
func (s *TableStore) List(ctx context.Context, limit int, after string) (*dto.TableList, error) {
	if limit < 1 {
		return nil, fmt.Errorf("list limit must be positive, got %d", limit)
	}

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM table_entities`).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count tables: %w", err)
	}

	// Fetch one extra row to learn whether another page exists.
	rows, err := s.db.QueryContext(ctx, `
		SELECT fqn, document FROM table_entities
		WHERE fqn > ?
		ORDER BY fqn
		LIMIT ?`, after, limit+1)
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	list := &dto.TableList{Total: total}
	var lastFQN string
	for rows.Next() {
		var fqn, doc string
		if err := rows.Scan(&fqn, &doc); err != nil {
			return nil, fmt.Errorf("failed to scan table row: %w", err)
		}
		if len(list.Tables) == limit {
			list.After = lastFQN
			break
		}
		table, err := decodeDocument(doc)
		if err != nil {
			return nil, err
		}
		list.Tables = append(list.Tables, *table)
		lastFQN = fqn
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table rows: %w", err)
	}
	return list, nil
}

// Delete removes an entity by UUID and returns the deleted document.
func (s *TableStore) Delete(ctx context.Context, id string) (*dto.Table, error) {
	table, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM table_entities WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("failed to delete table '%s': %w", id, err)
	}
	return table, nil
}

func decodeDocument(doc string) (*dto.Table, error) {
	var table dto.Table
	if err := json.Unmarshal([]byte(doc), &table); err != nil {
		return nil, fmt.Errorf("failed to decode table document: %w", err)
	}
	return &table, nil
}
