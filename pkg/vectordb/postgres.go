package vectordb

import (
	"database/sql"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// NewPostgresStore creates a new PostgreSQL-backed vector store. The DSN
// comes from the vectordb path setting.
func NewPostgresStore(dsn string) (Store, error) {
	db, err := sql.Open("pgx", dsn)
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
			embedding BYTEA NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_chunks_document ON chunks(document_id);`,
		insert: `INSERT INTO chunks
			(id, document_id, source, page, chunk_index, content, embedding)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET
				document_id = EXCLUDED.document_id,
				source = EXCLUDED.source,
				page = EXCLUDED.page,
				chunk_index = EXCLUDED.chunk_index,
				content = EXCLUDED.content,
				embedding = EXCLUDED.embedding`,
		deleteDoc: `DELETE FROM chunks WHERE document_id = $1`,
	})
}
