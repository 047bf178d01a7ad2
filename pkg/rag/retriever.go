package rag

import (
	"context"
	"fmt"

	"github.com/nikhilkoche/Home-Assignment/pkg/chat"
	"github.com/nikhilkoche/Home-Assignment/pkg/llm"
	"github.com/nikhilkoche/Home-Assignment/pkg/vectordb"
)

// Embedder generates vector embeddings for texts.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// LLMEmbedder adapts the llm client to the Embedder interface for a
// fixed embedding model.
type LLMEmbedder struct {
	Client *llm.Client
	Model  string
}

// Embed generates embeddings for the given texts
func (e *LLMEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	return e.Client.Embed(ctx, e.Model, texts)
}

// VectorRetriever retrieves passages by embedding the query and running
// a similarity search, dropping weak matches below a score threshold.
type VectorRetriever struct {
	store    vectordb.Store
	embedder Embedder
	topK     int
	minScore float64
}

// NewVectorRetriever creates a retriever over the given store
func NewVectorRetriever(store vectordb.Store, embedder Embedder, topK int, minScore float64) *VectorRetriever {
	if topK <= 0 {
		topK = 20
	}
	return &VectorRetriever{
		store:    store,
		embedder: embedder,
		topK:     topK,
		minScore: minScore,
	}
}

// Retrieve returns relevant passages for the query, best first. History
// is accepted for interface parity; the query is already condensed to a
// standalone question by the time it arrives here.
func (r *VectorRetriever) Retrieve(ctx context.Context, query string, history []chat.Turn) ([]chat.Passage, error) {
	embeddings, err := r.embedder.Embed(ctx, []string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	results, err := r.store.Search(ctx, embeddings[0], r.topK)
	if err != nil {
		return nil, fmt.Errorf("searching vector store: %w", err)
	}

	passages := make([]chat.Passage, 0, len(results))
	for _, res := range results {
		if res.Score < r.minScore {
			continue
		}
		passages = append(passages, chat.Passage{
			Content: res.Chunk.Content,
			Source:  res.Chunk.Source,
			Page:    res.Chunk.Page,
			Score:   res.Score,
		})
	}
	return passages, nil
}
