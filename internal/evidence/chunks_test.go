package evidence

import (
	"context"
	"errors"
	"testing"
)

// mapEmbedder returns a fixed vector per text
type mapEmbedder struct {
	vectors map[string][]float32
	err     error
}

func (m *mapEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := m.vectors[t]
		if !ok {
			v = []float32{0, 0}
		}
		out[i] = v
	}
	return out, nil
}

const chunkClaim = "The plant produced 22,500 megawatts at peak output."

const chunkContent = "The turbines reached 22,500 megawatts during the flood season peak. " +
	"Tourism along the river grew modestly in the same period. " +
	"Peak electrical output was confirmed by the operator in August. " +
	"Local restaurants reported a strong summer season overall. " +
	"The megawatt figure stood as a world record for a single station."

func relevanceEmbedder() *mapEmbedder {
	return &mapEmbedder{vectors: map[string][]float32{
		chunkClaim: {1, 0},
		"The turbines reached 22,500 megawatts during the flood season peak.": {0.9, 0.1},
		"Tourism along the river grew modestly in the same period.":           {0.1, 0.9},
		"Peak electrical output was confirmed by the operator in August.":     {0.8, 0.2},
		"Local restaurants reported a strong summer season overall.":          {0.05, 0.95},
		"The megawatt figure stood as a world record for a single station.":   {0.85, 0.15},
	}}
}

func TestSelectChunks_TopKInDocumentOrder(t *testing.T) {
	chunks := SelectChunks(context.Background(), relevanceEmbedder(), chunkClaim, chunkContent, 3)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	// The three relevant sentences are at positions 0, 2, and 4; selection
	// must return them in document order regardless of score order.
	wantPositions := []int{0, 2, 4}
	for i, c := range chunks {
		if c.Position != wantPositions[i] {
			t.Errorf("chunk %d position = %d, want %d", i, c.Position, wantPositions[i])
		}
		if c.Score <= 0 {
			t.Errorf("chunk %d has no score", i)
		}
	}
}

func TestSelectChunks_EmbedFailureFallsBackToLeadingSentences(t *testing.T) {
	broken := &mapEmbedder{err: errors.New("embeddings down")}
	chunks := SelectChunks(context.Background(), broken, chunkClaim, chunkContent, 3)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if c.Position != i {
			t.Errorf("fallback chunk %d position = %d", i, c.Position)
		}
		if c.Score != 0 {
			t.Errorf("fallback chunk %d should carry zero score, got %f", i, c.Score)
		}
	}
}

func TestSelectChunks_NilEmbedder(t *testing.T) {
	chunks := SelectChunks(context.Background(), nil, chunkClaim, chunkContent, 2)

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].Position != 0 || chunks[1].Position != 1 {
		t.Errorf("expected leading sentences, got positions %d and %d", chunks[0].Position, chunks[1].Position)
	}
}

func TestSelectChunks_FewerSentencesThanK(t *testing.T) {
	content := "The turbines reached 22,500 megawatts during the flood season peak."
	chunks := SelectChunks(context.Background(), relevanceEmbedder(), chunkClaim, content, 3)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
}

func TestSelectChunks_EmptyContent(t *testing.T) {
	if chunks := SelectChunks(context.Background(), nil, chunkClaim, "", 3); chunks != nil {
		t.Errorf("expected nil chunks for empty content, got %v", chunks)
	}
}
