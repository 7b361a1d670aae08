package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/erazemk/sledilnik/internal/db"
)

// SQLiteStore keeps documents as JSON bodies in a single SQLite table.
type SQLiteStore struct {
	DB *sql.DB
}

// OpenSQLite opens the database at path and ensures the schema exists.
func OpenSQLite(path string) (*SQLiteStore, error) {
	database, err := db.Open(path)
	if err != nil {
		return nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, err
	}
	return NewSQLite(database), nil
}

// NewSQLite wraps an open database whose schema is already in place.
func NewSQLite(database *sql.DB) *SQLiteStore {
	return &SQLiteStore{DB: database}
}

// Insert stores record under a new id.
func (s *SQLiteStore) Insert(ctx context.Context, collection string, record any) (string, error) {
	body, err := encodeBody(record)
	if err != nil {
		return "", fmt.Errorf("encoding %s document: %w", collection, err)
	}

	id := NewID()
	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO documents (id, collection, body) VALUES (?, ?, ?)`,
		id, collection, string(body),
	)
	if err != nil {
		return "", fmt.Errorf("inserting into %s: %w", collection, err)
	}
	return id, nil
}

// Query returns matching documents ordered by insertion.
func (s *SQLiteStore) Query(ctx context.Context, collection string, filter Filter, out any) error {
	query := `SELECT id, body FROM documents WHERE collection = ?`
	args := []any{collection}

	for _, c := range filter {
		if err := validField(c.Field); err != nil {
			return err
		}
		expr := fmt.Sprintf(`json_extract(body, '$.%s')`, c.Field)
		switch c.Op {
		case OpEq:
			query += ` AND ` + expr + ` = ?`
			args = append(args, c.Value)
		case OpContains:
			query += fmt.Sprintf(` AND instr(%[1]s(%[2]s), %[1]s(?)) > 0`, db.CaseFoldFunc, expr)
			args = append(args, c.Value)
		default:
			return fmt.Errorf("unsupported filter op %d", c.Op)
		}
	}
	query += ` ORDER BY seq`

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("querying %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []string
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return fmt.Errorf("scanning %s document: %w", collection, err)
		}
		doc, err := decodeBody(id, []byte(body))
		if err != nil {
			return fmt.Errorf("decoding %s document %s: %w", collection, id, err)
		}
		docs = append(docs, string(doc))
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("querying %s: %w", collection, err)
	}

	if err := json.Unmarshal([]byte("["+strings.Join(docs, ",")+"]"), out); err != nil {
		return fmt.Errorf("decoding %s documents: %w", collection, err)
	}
	return nil
}

// FindByID decodes one document into out.
func (s *SQLiteStore) FindByID(ctx context.Context, collection, id string, out any) error {
	if !ValidID(id) {
		return ErrNotFound
	}

	var body string
	err := s.DB.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("finding %s %s: %w", collection, id, err)
	}

	doc, err := decodeBody(id, []byte(body))
	if err != nil {
		return fmt.Errorf("decoding %s document %s: %w", collection, id, err)
	}
	if err := json.Unmarshal(doc, out); err != nil {
		return fmt.Errorf("decoding %s document %s: %w", collection, id, err)
	}
	return nil
}

// UpdateByID merges set into the stored body inside one transaction.
func (s *SQLiteStore) UpdateByID(ctx context.Context, collection, id string, set map[string]any) error {
	if !ValidID(id) {
		return ErrNotFound
	}
	for field := range set {
		if err := validField(field); err != nil {
			return err
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var body string
	err = tx.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("finding %s %s: %w", collection, id, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &fields); err != nil {
		return fmt.Errorf("decoding %s document %s: %w", collection, id, err)
	}
	for field, value := range set {
		raw, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("encoding field %s: %w", field, err)
		}
		fields[field] = raw
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encoding %s document %s: %w", collection, id, err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE documents SET body = ? WHERE collection = ? AND id = ?`,
		string(merged), collection, id,
	)
	if err != nil {
		return fmt.Errorf("updating %s %s: %w", collection, id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing update: %w", err)
	}
	return nil
}

// DeleteByID removes one document.
func (s *SQLiteStore) DeleteByID(ctx context.Context, collection, id string) error {
	if !ValidID(id) {
		return ErrNotFound
	}

	result, err := s.DB.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`, collection, id,
	)
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", collection, id, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting %s %s: %w", collection, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Collections lists collections that hold at least one document.
func (s *SQLiteStore) Collections(ctx context.Context) ([]string, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT DISTINCT collection FROM documents ORDER BY collection`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning collection: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}

func (s *SQLiteStore) Backend() string {
	return "sqlite"
}

func (s *SQLiteStore) Close(_ context.Context) error {
	return s.DB.Close()
}

// encodeBody marshals record as a JSON object and drops its id.
func encodeBody(record any) ([]byte, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("record is not a JSON object: %w", err)
	}
	delete(fields, "id")
	return json.Marshal(fields)
}

// decodeBody restores the id into a stored body.
func decodeBody(id string, body []byte) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	idJSON, err := json.Marshal(id)
	if err != nil {
		return nil, err
	}
	fields["id"] = idJSON
	return json.Marshal(fields)
}
