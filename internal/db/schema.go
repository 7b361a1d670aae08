package db

import (
	"database/sql"
	"fmt"
)

// schema stores every collection in one table. Bodies are JSON objects without
// the identifier, which lives in the id column. seq preserves insertion order.
const schema = `
CREATE TABLE IF NOT EXISTS documents (
    seq        INTEGER PRIMARY KEY AUTOINCREMENT,
    id         TEXT NOT NULL UNIQUE,
    collection TEXT NOT NULL,
    body       TEXT NOT NULL CHECK (json_valid(body)),
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_documents_collection
    ON documents(collection, seq);

CREATE INDEX IF NOT EXISTS idx_documents_item_id
    ON documents(collection, json_extract(body, '$.item_id'));
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
