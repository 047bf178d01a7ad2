package vectordb

import (
	"database/sql"

	_ "github.com/go-sql-driver/mysql"
)

// NewMySQLStore creates a new MySQL-backed vector store. The DSN comes
// from the vectordb path setting.
func NewMySQLStore(dsn string) (Store, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	return newSQLStore(db, dialect{
		schema: `
		CREATE TABLE IF NOT EXISTS chunks (
			id VARCHAR(64) PRIMARY KEY,
			document_id VARCHAR(64) NOT NULL,
			source TEXT,
			page INT,
			chunk_index INT NOT NULL,
			content MEDIUMTEXT NOT NULL,
			embedding MEDIUMBLOB NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			INDEX idx_chunks_document (document_id)
		)`,
		insert: `REPLACE INTO chunks
			(id, document_id, source, page, chunk_index, content, embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
		deleteDoc: `DELETE FROM chunks WHERE document_id = ?`,
	})
}
