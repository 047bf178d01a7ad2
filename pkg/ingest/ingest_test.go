package ingest

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/nikhilkoche/Home-Assignment/pkg/vectordb"
)

type countingEmbedder struct {
	calls      int
	batchSizes []int
	err        error
}

func (e *countingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	e.calls++
	e.batchSizes = append(e.batchSizes, len(texts))
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{float32(len(texts[i])), 1}
	}
	return out, nil
}

func makeChunks(n int) []vectordb.Chunk {
	chunks := make([]vectordb.Chunk, n)
	for i := range chunks {
		chunks[i] = vectordb.Chunk{
			ID:         fmt.Sprintf("c%d", i),
			DocumentID: "doc",
			Source:     "doc.pdf",
			Content:    strings.Repeat("x", i+1),
			Index:      i,
		}
	}
	return chunks
}

func TestEmbedChunksBatches(t *testing.T) {
	embedder := &countingEmbedder{}
	p := NewPipeline(vectordb.NewMemoryStore(), embedder)

	chunks := makeChunks(embedBatchSize + 5)
	if err := p.embedChunks(context.Background(), chunks); err != nil {
		t.Fatalf("embedChunks: %v", err)
	}

	if embedder.calls != 2 {
		t.Fatalf("expected 2 embedding batches, got %d", embedder.calls)
	}
	if embedder.batchSizes[0] != embedBatchSize || embedder.batchSizes[1] != 5 {
		t.Fatalf("unexpected batch sizes %v", embedder.batchSizes)
	}
	for i, c := range chunks {
		if len(c.Embedding) == 0 {
			t.Fatalf("chunk %d has no embedding", i)
		}
	}
}

func TestEmbedChunksPropagatesError(t *testing.T) {
	embedder := &countingEmbedder{err: errors.New("quota exceeded")}
	p := NewPipeline(vectordb.NewMemoryStore(), embedder)

	err := p.embedChunks(context.Background(), makeChunks(3))
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected embedder error, got %v", err)
	}
}

func TestDocumentIDStable(t *testing.T) {
	a := documentID("report.pdf")
	b := documentID("report.pdf")
	if a != b {
		t.Fatalf("same source produced different ids: %s vs %s", a, b)
	}
	if documentID("other.pdf") == a {
		t.Fatal("distinct sources collided")
	}
}

func TestIngestFileMissingFile(t *testing.T) {
	p := NewPipeline(vectordb.NewMemoryStore(), &countingEmbedder{})

	if _, err := p.IngestFile(context.Background(), "testdata/does-not-exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
