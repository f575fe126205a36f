// Package chunker implements the five chunking strategies (sentence,
// paragraph, token, hierarchical, semantic) and the factory that selects
// one from chunkopt.Options, grounded on the teacher's FallbackChunker and
// MarkdownChunker (paragraph/line/word cascade, sentence-based overlap via
// neurosnap/sentences) generalized across the language.Registry.
package chunker

import (
	"context"
	"fmt"

	"ragprep/internal/language"
	"ragprep/internal/rerrors"
	"ragprep/pkg/chunk"
	"ragprep/pkg/chunkopt"
)

// Chunker splits text into chunks under one strategy.
type Chunker interface {
	Chunk(ctx context.Context, text string, profile language.Profile, opts chunkopt.Options) ([]*chunk.Chunk, error)
}

// Embedder produces vector embeddings, used only by the semantic strategy
// to locate low-similarity breakpoints between consecutive sentences.
// EmbedBatch is expected to embed all texts in one round trip and
// preserve input order — the semantic chunker relies on both to turn its
// whole-document sentence split into a single embedding call.
type Embedder interface {
	// Dimension is the length of every vector this Embedder produces.
	Dimension() int
	// EmbedOne embeds a single piece of text.
	EmbedOne(ctx context.Context, text string) ([]float32, error)
	// EmbedBatch embeds texts in one call, returning one vector per input
	// in the same order.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	// CosineSimilarity scores how similar two embeddings are, in [-1, 1].
	CosineSimilarity(a, b []float32) float64
}

// New selects a Chunker for opts.Strategy. Auto resolves to Sentence,
// matching the teacher's default of falling back to a straightforward
// splitter when no format-specific strategy is requested. A Semantic
// request without an embedder returns rerrors.ErrStrategyUnavailable.
func New(strategy chunkopt.Strategy, embedder Embedder) (Chunker, error) {
	switch strategy {
	case chunkopt.Sentence, chunkopt.Auto, "":
		return SentenceChunker{}, nil
	case chunkopt.Paragraph:
		return ParagraphChunker{}, nil
	case chunkopt.Token:
		return TokenChunker{}, nil
	case chunkopt.Hierarchical:
		return HierarchicalChunker{}, nil
	case chunkopt.Semantic:
		if embedder == nil {
			return nil, fmt.Errorf("%w: semantic strategy requires an embedder", rerrors.ErrStrategyUnavailable)
		}
		return SemanticChunker{Embedder: embedder}, nil
	default:
		return nil, fmt.Errorf("%w: %q", rerrors.ErrStrategyUnavailable, strategy)
	}
}

// newChunk builds a Chunk with the fields every strategy fills in the same
// way; callers set Index/TotalCount afterward via chunk.Reindex.
func newChunk(id, content string, start, end int, profile language.Profile, opts chunkopt.Options, strategy chunkopt.Strategy) *chunk.Chunk {
	return &chunk.Chunk{
		ID:      id,
		Content: content,
		Location: chunk.Location{
			Start: start,
			End:   end,
		},
		Metadata: chunk.Metadata{
			Language:  profile.Code(),
			EstTokens: profile.EstimateTokenCount(content),
			Strategy:  string(strategy),
		},
	}
}
