package vectordb

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// NewSQLiteStore creates a new SQLite-backed vector store
func NewSQLiteStore(dbPath string) (Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	return newSQLStore(db, dialect{
		schema: `
		CREATE TABLE IF NOT EXISTS chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			source TEXT,
			page INTEGER,
			chunk_index INTEGER NOT NULL,
			content TEXT NOT NULL,
			embedding BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);`,
		insert: `INSERT OR REPLACE INTO chunks
			(id, document_id, source, page, chunk_index, content, embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		deleteDoc: `DELETE FROM chunks WHERE document_id = ?`,
	})
}
