// Package ingest turns PDF files into searchable vector store entries.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/nikhilkoche/Home-Assignment/pkg/logger"
	"github.com/nikhilkoche/Home-Assignment/pkg/observability"
	"github.com/nikhilkoche/Home-Assignment/pkg/pdf"
	"github.com/nikhilkoche/Home-Assignment/pkg/rag"
	"github.com/nikhilkoche/Home-Assignment/pkg/vectordb"
)

// embedBatchSize bounds how many chunk texts go to the embeddings API
// in one request.
const embedBatchSize = 64

// Result summarizes one ingested file.
type Result struct {
	DocumentID  string `json:"document_id"`
	Source      string `json:"source"`
	TotalPages  int    `json:"total_pages"`
	TotalChunks int    `json:"total_chunks"`
}

// Pipeline extracts, chunks, embeds, and stores PDF documents.
type Pipeline struct {
	store    vectordb.Store
	embedder rag.Embedder
	log      *logger.Logger
}

func NewPipeline(store vectordb.Store, embedder rag.Embedder) *Pipeline {
	return &Pipeline{
		store:    store,
		embedder: embedder,
		log:      logger.Get().With("component", "ingest"),
	}
}

// IngestFile indexes one PDF. Re-ingesting the same source replaces the
// previous chunks for that file name.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (*Result, error) {
	source := filepath.Base(path)

	pages, err := pdf.Extract(path)
	if err != nil {
		observability.DocumentsIngestedTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("extracting %s: %w", source, err)
	}

	docID := documentID(source)
	chunks := pdf.ChunkPages(pages, docID, source)
	if len(chunks) == 0 {
		observability.DocumentsIngestedTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("%s: no indexable text found", source)
	}

	if err := p.embedChunks(ctx, chunks); err != nil {
		observability.DocumentsIngestedTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("embedding %s: %w", source, err)
	}

	// The document ID is derived from the file name, so dropping it
	// first makes re-uploading a file replace its previous chunks.
	if err := p.store.DeleteDocument(ctx, docID); err != nil {
		p.log.WarnWith("Failed to remove previous document version", "source", source, "error", err)
	}
	if err := p.store.Add(ctx, chunks); err != nil {
		observability.DocumentsIngestedTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("storing %s: %w", source, err)
	}

	observability.DocumentsIngestedTotal.WithLabelValues("success").Inc()
	p.log.InfoWith("Document ingested",
		"source", source,
		"pages", len(pages),
		"chunks", len(chunks))

	return &Result{
		DocumentID:  docID,
		Source:      source,
		TotalPages:  len(pages),
		TotalChunks: len(chunks),
	}, nil
}

// documentID is stable for a given file name.
func documentID(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:16])
}

func (p *Pipeline) embedChunks(ctx context.Context, chunks []vectordb.Chunk) error {
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, c := range batch {
			texts[i] = c.Content
		}
		embeddings, err := p.embedder.Embed(ctx, texts)
		if err != nil {
			return err
		}
		if len(embeddings) != len(batch) {
			return fmt.Errorf("embedder returned %d vectors for %d chunks", len(embeddings), len(batch))
		}
		for i := range batch {
			batch[i].Embedding = embeddings[i]
		}
	}
	return nil
}
