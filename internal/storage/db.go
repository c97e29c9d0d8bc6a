package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"orderdesk/internal"
)

// DB holds the interaction audit log. The order table itself is never
// persisted here; every request re-fetches it from the sheet.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS interactions (
  id TEXT PRIMARY KEY,
  question TEXT,
  orderId TEXT,
  email TEXT,
  outcome TEXT NOT NULL,
  reply TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_interactions_orderId ON interactions(orderId);
CREATE INDEX IF NOT EXISTS idx_interactions_createdAt ON interactions(createdAt);
`

	_, err := d.conn.Exec(schema)
	return err
}

func (d *DB) InsertInteraction(row internal.InteractionRow) error {
	_, err := d.conn.Exec(`
INSERT INTO interactions (id, question, orderId, email, outcome, reply)
VALUES (?, ?, ?, ?, ?, ?)
`, row.ID, row.Question, row.OrderID, row.Email, row.Outcome, row.Reply)
	return err
}

func (d *DB) ListRecentInteractions(limit int) ([]internal.InteractionRow, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := d.conn.Query(`
SELECT id, question, orderId, email, outcome, reply, createdAt
FROM interactions
ORDER BY createdAt DESC, id
LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.InteractionRow
	for rows.Next() {
		var row internal.InteractionRow
		if err := rows.Scan(&row.ID, &row.Question, &row.OrderID, &row.Email, &row.Outcome, &row.Reply, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}

	return out, rows.Err()
}
