package rag

import (
	"context"
	"errors"
	"testing"

	"github.com/nikhilkoche/Home-Assignment/pkg/vectordb"
)

// fixedEmbedder returns a canned embedding for any input.
type fixedEmbedder struct {
	vector []float32
	err    error
}

func (e *fixedEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = e.vector
	}
	return out, nil
}

func TestVectorRetrieverFiltersByScore(t *testing.T) {
	ctx := context.Background()
	store := vectordb.NewMemoryStore()
	err := store.Add(ctx, []vectordb.Chunk{
		{ID: "strong", DocumentID: "d", Source: "a.pdf", Page: 1, Content: "refund policy", Embedding: []float32{1, 0}},
		{ID: "weak", DocumentID: "d", Source: "a.pdf", Page: 9, Content: "unrelated", Embedding: []float32{0, 1}},
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	r := NewVectorRetriever(store, &fixedEmbedder{vector: []float32{1, 0}}, 10, 0.2)
	passages, err := r.Retrieve(ctx, "refunds?", nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(passages) != 1 {
		t.Fatalf("Expected weak match filtered out, got %v", passages)
	}
	if passages[0].Content != "refund policy" || passages[0].Page != 1 {
		t.Errorf("Passage = %+v", passages[0])
	}
}

func TestVectorRetrieverEmbedFailure(t *testing.T) {
	r := NewVectorRetriever(vectordb.NewMemoryStore(), &fixedEmbedder{err: errors.New("backend down")}, 10, 0)
	if _, err := r.Retrieve(context.Background(), "q", nil); err == nil {
		t.Fatal("Expected error when embedding fails")
	}
}

func TestVectorRetrieverEmptyStore(t *testing.T) {
	r := NewVectorRetriever(vectordb.NewMemoryStore(), &fixedEmbedder{vector: []float32{1}}, 10, 0.2)
	passages, err := r.Retrieve(context.Background(), "q", nil)
	if err != nil {
		t.Fatalf("Retrieve failed: %v", err)
	}
	if len(passages) != 0 {
		t.Errorf("Expected no passages, got %v", passages)
	}
}
