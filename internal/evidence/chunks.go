package evidence

import (
	"context"
	"sort"

	"github.com/claimlens/claimlens/internal/classify"
	"github.com/claimlens/claimlens/internal/embed"
	"github.com/claimlens/claimlens/internal/logger"
	"github.com/claimlens/claimlens/internal/model"
)

// Chunk sentence bounds are looser than claim segmentation: short factual
// fragments still make useful quotes.
const (
	chunkMinSentenceLen = 20
	chunkMaxSentenceLen = 600
)

// SelectChunks picks the k content sentences most relevant to the claim and
// returns them in original document order. When embedding is unavailable or
// fails, the first k sentences are returned verbatim with zero scores: the
// source is never dropped over a ranking failure.
func SelectChunks(ctx context.Context, embedder embed.Embedder, claimText, content string, k int) []model.EvidenceChunk {
	if k <= 0 {
		k = 3
	}

	sentences := classify.SegmentSentences(content, chunkMinSentenceLen, chunkMaxSentenceLen)
	if len(sentences) == 0 {
		return nil
	}

	if len(sentences) <= k {
		return positionalChunks(sentences, len(sentences))
	}

	if embedder == nil {
		return positionalChunks(sentences, k)
	}

	vectors, err := embedder.Embed(ctx, append([]string{claimText}, sentences...))
	if err != nil || len(vectors) != len(sentences)+1 {
		if err != nil {
			logger.Log.Debugf("chunk embedding failed, using positional fallback: %v", err)
		}
		return positionalChunks(sentences, k)
	}

	claimVec := vectors[0]
	chunks := make([]model.EvidenceChunk, len(sentences))
	for i, s := range sentences {
		chunks[i] = model.EvidenceChunk{
			Text:     s,
			Position: i,
			Score:    embed.CosineSimilarity(claimVec, vectors[i+1]),
		}
	}

	sort.SliceStable(chunks, func(a, b int) bool { return chunks[a].Score > chunks[b].Score })
	chunks = chunks[:k]
	sort.Slice(chunks, func(a, b int) bool { return chunks[a].Position < chunks[b].Position })

	return chunks
}

func positionalChunks(sentences []string, k int) []model.EvidenceChunk {
	if k > len(sentences) {
		k = len(sentences)
	}
	chunks := make([]model.EvidenceChunk, k)
	for i := 0; i < k; i++ {
		chunks[i] = model.EvidenceChunk{Text: sentences[i], Position: i}
	}
	return chunks
}
