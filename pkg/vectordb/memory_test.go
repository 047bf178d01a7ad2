package vectordb

import (
	"context"
	"testing"
)

func testChunks() []Chunk {
	return []Chunk{
		{ID: "c1", DocumentID: "d1", Content: "refund policy", Embedding: []float32{1, 0, 0}},
		{ID: "c2", DocumentID: "d1", Content: "shipping times", Embedding: []float32{0, 1, 0}},
		{ID: "c3", DocumentID: "d2", Content: "return window", Embedding: []float32{0.9, 0.1, 0}},
	}
}

func TestMemoryStoreSearchRanking(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Add(ctx, testChunks()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	results, err := s.Search(ctx, []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "c1" {
		t.Errorf("Best match = %s, want c1", results[0].Chunk.ID)
	}
	if results[1].Chunk.ID != "c3" {
		t.Errorf("Second match = %s, want c3", results[1].Chunk.ID)
	}
	if results[0].Score < results[1].Score {
		t.Error("Results not sorted by descending score")
	}
}

func TestMemoryStoreDeleteDocument(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Add(ctx, testChunks()); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := s.DeleteDocument(ctx, "d1"); err != nil {
		t.Fatalf("DeleteDocument failed: %v", err)
	}
	n, err := s.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d after delete, want 1", n)
	}

	results, _ := s.Search(ctx, []float32{1, 0, 0}, 10)
	for _, r := range results {
		if r.Chunk.DocumentID == "d1" {
			t.Errorf("Deleted document chunk %s still searchable", r.Chunk.ID)
		}
	}
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"identical", []float32{1, 2, 3}, []float32{1, 2, 3}, 1},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"opposite", []float32{1, 0}, []float32{-1, 0}, -1},
		{"mismatched length", []float32{1, 0}, []float32{1}, 0},
		{"zero vector", []float32{0, 0}, []float32{1, 1}, 0},
	}
	for _, tt := range tests {
		got := cosineSimilarity(tt.a, tt.b)
		if got < tt.want-1e-9 || got > tt.want+1e-9 {
			t.Errorf("%s: cosineSimilarity = %v, want %v", tt.name, got, tt.want)
		}
	}
}
