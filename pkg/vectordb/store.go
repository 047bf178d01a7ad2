// Package vectordb provides persistent storage and similarity search for
// document chunk embeddings. The Store interface allows memory, SQLite,
// MySQL, and PostgreSQL backends behind one API.
package vectordb

import (
	"context"
	"math"
)

// Chunk is one embedded piece of a document.
type Chunk struct {
	ID         string
	DocumentID string
	Source     string // original filename, for citation
	Page       int
	Index      int // position in document
	Content    string
	Embedding  []float32
}

// SearchResult is a chunk with its similarity to the query.
type SearchResult struct {
	Chunk Chunk
	Score float64
}

// Store defines the interface for vector storage operations
type Store interface {
	// Add saves chunks with their embeddings.
	Add(ctx context.Context, chunks []Chunk) error

	// Search returns the topK most similar chunks to the query
	// embedding, best first.
	Search(ctx context.Context, embedding []float32, topK int) ([]SearchResult, error)

	// DeleteDocument removes all chunks for a document.
	DeleteDocument(ctx context.Context, documentID string) error

	// Count returns the number of stored chunks.
	Count(ctx context.Context) (int, error)

	// Lifecycle
	Close() error
}

// cosineSimilarity computes the cosine similarity between two vectors.
// Mismatched or zero-length vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
