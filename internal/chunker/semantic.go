package chunker

import (
	"context"

	"ragprep/internal/language"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"
)

// SemanticChunker embeds every sentence in one batch call, then breaks
// after sentence i whenever its consecutive-pairwise similarity to
// sentence i+1 drops below SimilarityThreshold (once the accumulated
// chunk has reached MinSize) or the accumulated chunk has reached
// MaxSize, a content-aware alternative to SentenceChunker's
// purely length-driven cascade.
type SemanticChunker struct {
	Embedder Embedder
}

func (s SemanticChunker) Chunk(ctx context.Context, text string, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error) {
	if text == "" {
		return nil, nil
	}
	bounds := profile.FindSentenceBoundaries(text)
	if len(bounds) == 0 {
		return nil, nil
	}

	sentences := make([]string, 0, len(bounds))
	starts := make([]int, 0, len(bounds))
	prev := 0
	for _, b := range bounds {
		if b <= prev {
			continue
		}
		sentences = append(sentences, text[prev:b])
		starts = append(starts, prev)
		prev = b
	}
	starts = append(starts, prev)

	if len(sentences) == 0 {
		return nil, nil
	}

	embeddings, err := s.Embedder.EmbedBatch(ctx, sentences)
	if err != nil {
		return nil, err
	}

	// Consecutive pairwise similarities: similarities[i] is the
	// similarity between sentence i and sentence i+1.
	similarities := make([]float64, len(sentences)-1)
	for i := 0; i < len(similarities); i++ {
		similarities[i] = s.Embedder.CosineSimilarity(embeddings[i], embeddings[i+1])
	}

	var spans []span
	segStart := starts[0]
	tokens := profile.EstimateTokenCount(sentences[0])

	flush := func(end int) {
		if end > segStart {
			spans = append(spans, span{start: segStart, end: end})
		}
	}

	for i := 0; i < len(sentences)-1; i++ {
		sim := similarities[i]
		forcedByMax := tokens >= opts.MaxSize
		lowSimilarity := tokens >= opts.MinSize && sim < opts.SimilarityThreshold

		if forcedByMax || lowSimilarity {
			flush(starts[i+1])
			segStart = starts[i+1]
			tokens = profile.EstimateTokenCount(sentences[i+1])
			continue
		}

		tokens += profile.EstimateTokenCount(sentences[i+1])
	}
	// Open Question 3: always an implicit terminal breakpoint after the
	// last sentence, closing out whatever span is still accumulating.
	flush(starts[len(starts)-1])

	spans = mergeUndersizedSpans(text, spans, profile, opts)
	return spansToChunks(text, spans, profile, opts, chunkopt.Semantic), nil
}
